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


package corpus

import "github.com/poiesic/homeqa/core"

// pageBaseURL is the public address prefix of allowlisted pages.
const pageBaseURL = "https://www.notion.so/"

// Page is an approved external knowledge page.
type Page struct {
	Title  string `json:"title"`
	PageID string `json:"page_id"`
}

// URL returns the public address of the page.
func (p Page) URL() string {
	return PageURL(p.PageID)
}

// PageURL returns the public address of the page with the given ID.
func PageURL(pageID string) string {
	return pageBaseURL + pageID
}

// AllowlistedPages returns the catalogue of pages approved for injection.
func AllowlistedPages() []Page {
	return []Page{
		{Title: "Make home buying transparent", PageID: "15ff821f9675800faa69f8d774ab773f"},
		{Title: "Real Estate Tech Tool Development", PageID: "1f0f821f967580edba86c8c6fba56aa2"},
		{Title: "Escrow Timeline", PageID: "230f821f967580d9bb00f9f460e9334e"},
		{Title: "Agent View Epic 1", PageID: "237f821f967580d2ae47f0344be903fd"},
		{Title: "Property data flow", PageID: "247f821f9675803ea2f7f7f7bf3529e826"},
		{Title: "One Stop Dashboard - Priority 1", PageID: "1f8f821f967580f89978deee5a1dc0cb"},
		{Title: "User Stories", PageID: "226f821f9675801cb9f0c7adf1544ccc"},
		{Title: "Buyer Chatbot - Priority 1", PageID: "226f821f967580ea8281def931fb5610"},
		{Title: "FUB Integration", PageID: "211f821f9675804d896ad5593f6bf911"},
		{Title: "Home Matching Engine - Priority 2", PageID: "209f821f967580748511d22523312956"},
		{Title: "FUB Stage Mapping Analysis", PageID: "23af821f96758106b0b1e58702875f9f"},
	}
}

// SamplePage returns the sample content of the "Make home buying
// transparent" page, for development and demos.
func SamplePage() core.Document {
	return core.Document{
		Title:   "Make home buying transparent - Full Content",
		Content: samplePageContent,
		URL:     PageURL("15ff821f9675800faa69f8d774ab773f"),
	}
}

const samplePageContent = `
## Home Buying Made Transparent

### Key Pain Points We Address:
1. **Hidden Costs**: Buyers never know what additional closing costs will come up
2. **Complex Information**: Disclosures and TIC agreements are hard to understand
3. **Fragmented Process**: Information scattered across multiple tools

### Our Solution:
- Single source of truth for the entire home buying journey
- AI-powered document summaries that highlight important information
- Real-time cost calculators for monthly expenses
- Chat-based guidance through every step of the process

### Benefits for Buyers:
- Clear understanding of all costs upfront
- Simplified explanations of complex documents
- Guidance through the entire process
- Reduced stress and uncertainty

### Benefits for Agents:
- Less time spent on repetitive buyer education
- Tools to help buyers understand complex documents
- Better buyer confidence and trust
- Streamlined communication and transparency
`
