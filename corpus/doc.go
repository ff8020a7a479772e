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


// Package corpus holds the documents questions are answered from.
//
// A Registry is an ordered, append-only collection. It starts empty
// (NewRegistry) or with the built-in home-buying guides (NewSeededRegistry)
// and grows as knowledge is injected at runtime. Reads are lock-free
// snapshots, so retrieval running alongside an injection sees either the
// old or the extended registry.
//
// # Persistence
//
// With WithRepository, runtime registrations are written to a
// storage.DocumentRepository before they become visible, and Load replays
// them into a fresh registry:
//
//	repo, err := badger.OpenRepository(dir)
//	if err != nil {
//	    return err
//	}
//	registry := corpus.NewSeededRegistry(corpus.WithRepository(repo))
//	if _, err := registry.Load(ctx); err != nil {
//	    return err
//	}
//
// # Allowlisted pages
//
// AllowlistedPages lists external pages approved for injection and
// HomeBuyingTopic is the title filter applied to them. SamplePage provides
// offline sample content for one of those pages.
package corpus
