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


package homeqa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/ai/goopenai"
	"github.com/poiesic/homeqa/ai/openai"
	"github.com/poiesic/homeqa/chat"
	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/corpus"
	"github.com/poiesic/homeqa/ingestion"
	"github.com/poiesic/homeqa/search"
	"github.com/poiesic/homeqa/storage"
	"github.com/poiesic/homeqa/storage/badger"
)

// Engine answers home buying questions from a document registry, optionally
// through a remote chat model.
type Engine struct {
	registry     *corpus.Registry
	searcher     *search.Searcher
	orchestrator *chat.Orchestrator
	model        ai.ChatModel
	repo         storage.DocumentRepository
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	params      search.Params
	dataDir     string
	corpus      []core.Document
	customSeed  bool
	model       ai.ChatModel
	chatOptions []chat.Option
	logger      *slog.Logger
}

// WithAIConfig configures the remote chat model. Without an API key the
// engine answers locally.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithSearchParams overrides the retrieval and synthesis constants.
func WithSearchParams(params search.Params) EngineOption {
	return func(o *engineOptions) {
		o.params = params
	}
}

// WithDataDir persists injected documents under dir and replays them on
// start.
func WithDataDir(dir string) EngineOption {
	return func(o *engineOptions) {
		o.dataDir = dir
	}
}

// WithCorpus replaces the built-in home buying documents with docs.
// WithCorpus() with no documents starts from an empty registry.
func WithCorpus(docs ...core.Document) EngineOption {
	return func(o *engineOptions) {
		o.corpus = docs
		o.customSeed = true
	}
}

// WithChatModel sets the remote model directly, bypassing WithAIConfig.
func WithChatModel(model ai.ChatModel) EngineOption {
	return func(o *engineOptions) {
		o.model = model
	}
}

// WithChatOptions passes options to the conversation orchestrator.
func WithChatOptions(opts ...chat.Option) EngineOption {
	return func(o *engineOptions) {
		o.chatOptions = append(o.chatOptions, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine creates an engine. The registry starts with the built-in
// documents, followed by any documents persisted under the data directory.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		params:   search.DefaultParams(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	e := &Engine{logger: options.logger}

	var regOpts []corpus.RegistryOption
	regOpts = append(regOpts, corpus.WithLogger(options.logger.With("component", "registry")))
	if options.dataDir != "" {
		repo, err := badger.OpenRepository(options.dataDir)
		if err != nil {
			return nil, fmt.Errorf("open document store: %w", err)
		}
		e.repo = repo
		regOpts = append(regOpts, corpus.WithRepository(repo))
	}

	if options.customSeed {
		e.registry = corpus.NewRegistry(regOpts...)
		if err := e.registry.Seed(options.corpus...); err != nil {
			e.Close()
			return nil, err
		}
	} else {
		e.registry = corpus.NewSeededRegistry(regOpts...)
	}

	if e.repo != nil {
		if _, err := e.registry.Load(context.Background()); err != nil {
			e.Close()
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(e.registry,
		search.WithParams(options.params),
		search.WithLogger(options.logger.With("component", "search")))
	if err != nil {
		e.Close()
		return nil, err
	}
	e.searcher = searcher

	model := options.model
	if model == nil {
		model, err = newChatModel(options.aiConfig)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	e.model = model

	chatOpts := []chat.Option{chat.WithLogger(options.logger.With("component", "orchestrator"))}
	if cfg := options.aiConfig; cfg != nil {
		chatOpts = append(chatOpts,
			chat.WithTimeout(cfg.Timeout),
			chat.WithRateLimit(cfg.RequestsPerMinute, cfg.Burst),
			chat.WithRetry(cfg.MaxRetries, cfg.RetryDelay))
	}
	if model != nil {
		chatOpts = append(chatOpts, chat.WithChatModel(model))
	}
	chatOpts = append(chatOpts, options.chatOptions...)

	e.orchestrator, err = chat.NewOrchestrator(searcher, chatOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// newChatModel builds the configured backend. It returns nil without error
// when no credential is configured.
func newChatModel(cfg *ai.Config) (ai.ChatModel, error) {
	if cfg == nil || !cfg.Configured() {
		slog.Debug("no remote credential configured, answering locally")
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case ai.BackendGoOpenAI:
		return goopenai.NewChatModel(cfg)
	default:
		return openai.NewChatModel(cfg)
	}
}

// AnswerQuestion answers query from the registry alone.
func (e *Engine) AnswerQuestion(query string) core.QAResult {
	return e.searcher.AnswerQuestion(query)
}

// RetrieveContext returns snippets of the documents most relevant to query.
// maxDocs <= 0 uses the configured default.
func (e *Engine) RetrieveContext(query string, maxDocs int) []core.ContextEntry {
	return e.searcher.RetrieveContext(query, maxDocs)
}

// InjectKnowledge adds a document to the registry. It is visible to every
// later query. No topic filter applies.
func (e *Engine) InjectKnowledge(ctx context.Context, title, content string) error {
	return e.registry.Inject(ctx, title, content)
}

// InjectDocument adds doc, including its URL, to the registry.
func (e *Engine) InjectDocument(ctx context.Context, doc core.Document) error {
	return e.registry.Register(ctx, doc)
}

// SendChatMessage answers userMessage in the context of history, through
// the remote model when configured and locally otherwise.
func (e *Engine) SendChatMessage(ctx context.Context, userMessage string, history []core.ConversationMessage) core.ChatResponse {
	return e.orchestrator.SendChatMessage(ctx, userMessage, history)
}

// NewSession starts a conversation that keeps its own history.
func (e *Engine) NewSession() (*chat.Session, error) {
	return chat.NewSession(e.orchestrator)
}

// NewIngestionPipeline creates a pipeline registering files into the engine.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.registry, opts...)
}

// Registry returns the document registry.
func (e *Engine) Registry() *corpus.Registry {
	return e.registry
}

// RemoteConfigured reports whether a remote model is in use.
func (e *Engine) RemoteConfigured() bool {
	return e.model != nil
}

// Close releases the remote model and the document store.
func (e *Engine) Close() error {
	var errs []error
	if e.model != nil {
		if err := e.model.Close(); err != nil {
			e.logger.Error("error closing chat model", "err", err)
			errs = append(errs, err)
		}
	}
	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			e.logger.Error("error closing document store", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
