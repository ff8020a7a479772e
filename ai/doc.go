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


// Package ai provides abstractions for the remote chat model used by homeqa.
//
// The question answering engine works entirely offline. A ChatModel is an
// optional front end that receives retrieved knowledge as context and writes
// a conversational reply. Every failure of the model falls back to the
// local answer, so nothing in this package is required for correctness.
//
// # Implementation Packages
//
//   - ai/openai: ChatModel over langchaingo's OpenAI client (default backend)
//   - ai/goopenai: ChatModel over sashabaranov/go-openai
//   - ai/mock: Test double for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewChatModel, goopenai.NewChatModel) return
// the ai.ChatModel INTERFACE to prevent coupling to a concrete client.
//
//	model, err := openai.NewChatModel(config)  // returns ai.ChatModel
//
// The test constructor mock.NewMockChatModel returns the CONCRETE type so
// tests can inject behavior and make assertions (CallCount, LastMessages,
// Reset).
//
// # Configuration
//
//	config := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithRateLimit(60, 5),
//	)
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// A Config without an API key is valid. It describes a deployment that
// answers from the local corpus only.
package ai
