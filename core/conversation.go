// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is an immutable prompt building block.
type ConversationMessage struct {
	Role    Role
	Content string
}

// SystemMessage returns a system-role message.
func SystemMessage(content string) ConversationMessage {
	return ConversationMessage{Role: RoleSystem, Content: content}
}

// UserMessage returns a user-role message.
func UserMessage(content string) ConversationMessage {
	return ConversationMessage{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant-role message.
func AssistantMessage(content string) ConversationMessage {
	return ConversationMessage{Role: RoleAssistant, Content: content}
}

// ConversationContext is the prompt assembled for a single turn.
// KnowledgeContext is empty when no snippets were retrieved.
type ConversationContext struct {
	Messages         []ConversationMessage
	KnowledgeContext string
}
