// Package analyzer extracts characters, relationships, and traits from
// literary texts by delegating the reading to an LLM and reconciling the
// per-chunk answers into one result. The model is an untrusted collaborator:
// every call and every response can fail, and all such failures degrade into
// default-shaped data instead of errors, so a long extraction completes with
// whatever chunks succeeded.
package analyzer

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/chunker"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/flight"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/inference"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/schema"
	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/utils"
)

// DefaultChunkSize is the chunk byte limit when the caller passes none.
const DefaultChunkSize = 4000

// Analyzer composes the chunker, a provider gateway, the response decoders,
// and the merge rules. One Analyzer is safe for concurrent use; each operation
// owns its own chunk list and accumulator.
type Analyzer struct {
	inf       inference.Inferencer
	log       *log.Logger
	prompts   Prompts
	chunkSize int
	workers   int
	timeout   time.Duration
	fuzzy     float64
	cacheTTL  *time.Duration
	cache     *flight.Cache[callKey, string]
}

type callKey struct {
	system string
	user   string
}

// New creates an Analyzer on top of the given gateway.
func New(inf inference.Inferencer, opts ...Option) *Analyzer {
	a := &Analyzer{
		inf:       inf,
		log:       log.Default(),
		prompts:   DefaultPrompts(),
		chunkSize: DefaultChunkSize,
		workers:   1,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cacheTTL != nil {
		a.cache = flight.NewCache[callKey, string](*a.cacheTTL)
	}
	return a
}

// ExtractCharacters splits text into chunks of at most chunkSize bytes, asks
// the model for the characters in each chunk, and merges the answers into one
// deduplicated list. chunkSize <= 0 uses the configured default. A chunk whose
// call or decode fails contributes no records.
func (a *Analyzer) ExtractCharacters(ctx context.Context, text string, chunkSize int) []schema.Character {
	if chunkSize <= 0 {
		chunkSize = a.chunkSize
	}
	chunks := chunker.ChunkText(text, chunkSize)
	run := ksuid.New().String()
	a.log.Info("extracting characters", "run", run, "chars", len(text), "chunks", len(chunks))

	// Results land in chunk order so the merge tie-breaks match sequential
	// dispatch whatever the worker count.
	results := make([][]schema.Character, len(chunks))
	g := new(errgroup.Group)
	g.SetLimit(a.workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			params := &openai.ChatCompletionNewParams{
				ResponseFormat: schema.CharacterListResponseFormat(),
			}
			out, err := a.invoke(ctx, params, a.prompts.renderCharacters(chunk))
			if err != nil {
				a.log.Error("chunk inference failed", "run", run, "chunk", i+1, "error", err)
				return nil
			}
			chars, ok := DecodeCharacters(out)
			if !ok {
				a.log.Warn("could not parse response as JSON", "run", run, "chunk", i+1, "response", utils.Preview(out, 100))
				return nil
			}
			results[i] = chars
			return nil
		})
	}
	_ = g.Wait() // per-chunk failures are absorbed above, never returned

	var all []schema.Character
	for _, r := range results {
		all = append(all, r...)
	}
	var merged []schema.Character
	if a.fuzzy > 0 {
		merged = MergeCharactersFuzzy(all, a.fuzzy)
	} else {
		merged = MergeCharacters(all)
	}
	a.log.Info("extraction finished", "run", run, "records", len(all), "characters", len(merged))
	return merged
}

// AnalyzeRelationships asks the model, in a single un-chunked call, how the
// named characters relate within text. Call or decode failure yields the
// empty relationship set.
func (a *Analyzer) AnalyzeRelationships(ctx context.Context, text string, characters []string) schema.RelationshipSet {
	run := ksuid.New().String()
	params := &openai.ChatCompletionNewParams{
		ResponseFormat: schema.RelationshipSetResponseFormat(),
	}
	out, err := a.invoke(ctx, params, a.prompts.renderRelationships(text, characters))
	if err != nil {
		a.log.Error("relationship inference failed", "run", run, "error", err)
		return schema.RelationshipSet{Relationships: []schema.Relationship{}}
	}
	set, ok := DecodeRelationships(out)
	if !ok {
		a.log.Warn("could not parse relationships JSON", "run", run, "response", utils.Preview(out, 100))
	}
	return set
}

// ExtractCharacterTraits asks the model, in a single un-chunked call, for a
// deep-dive on one character. Call or decode failure yields a profile carrying
// only the name and an error marker.
func (a *Analyzer) ExtractCharacterTraits(ctx context.Context, text, name string) schema.TraitProfile {
	run := ksuid.New().String()
	params := &openai.ChatCompletionNewParams{
		ResponseFormat: schema.TraitProfileResponseFormat(),
	}
	out, err := a.invoke(ctx, params, a.prompts.renderTraits(text, name))
	if err != nil {
		a.log.Error("trait inference failed", "run", run, "character", name, "error", err)
		return schema.TraitProfile{Name: name, Error: "LLM call failed"}
	}
	profile, ok := DecodeTraits(out, name)
	if !ok {
		a.log.Warn("could not parse character traits JSON", "run", run, "character", name, "response", utils.Preview(out, 100))
	}
	return profile
}

func (a *Analyzer) invoke(ctx context.Context, params *openai.ChatCompletionNewParams, user string) (string, error) {
	call := func() (string, error) {
		cctx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}
		if n, err := utils.NumTokens(a.prompts.System + user); err == nil {
			a.log.Debug("dispatching completion", "chars", len(user), "tokens", n)
		}
		return a.inf.Infer(cctx, params, a.prompts.System, user)
	}
	if a.cache != nil {
		return a.cache.Do(callKey{system: a.prompts.System, user: user}, call)
	}
	return call()
}
