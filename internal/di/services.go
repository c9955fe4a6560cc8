package di

import (
	"fmt"
	"time"

	"github.com/aristath/productpulse/internal/clientdata"
	"github.com/aristath/productpulse/internal/clients/ollama"
	"github.com/aristath/productpulse/internal/clients/serpapi"
	"github.com/aristath/productpulse/internal/config"
	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/narrative"
	"github.com/aristath/productpulse/internal/modules/pipeline"
	"github.com/aristath/productpulse/internal/modules/prediction"
	"github.com/rs/zerolog"
)

// narratorRateLimit spaces out narrator requests
const narratorRateLimit = 200 * time.Millisecond

// InitializeServices creates clients and services and stores them in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	// ==========================================
	// External collaborators
	// ==========================================
	if cfg.Narrative.Enabled {
		container.Narrator = ollama.NewClient(
			cfg.Narrative.OllamaURL,
			cfg.Narrative.OllamaModel,
			log,
			ollama.WithRateLimit(narratorRateLimit),
		)
	} else {
		log.Info().Msg("Narrative generation disabled, using fallback text")
	}

	if cfg.FetcherEnabled() {
		container.Fetcher = clientdata.NewCachedFetcher(
			serpapi.NewClient(cfg.SerpAPIKey, "", log),
			container.ClientDataRepo,
			clientdata.TTLListings,
			log,
		)
	} else {
		log.Info().Msg("SERPAPI_KEY not set, listing search disabled")
	}

	// ==========================================
	// Classifier
	// ==========================================
	model, err := loadModel(cfg.ModelPath)
	if err != nil {
		return err
	}
	container.Classifier = model
	container.ModelName = model.Name()

	// ==========================================
	// Pipeline stages
	// ==========================================
	narrativeCfg := narrative.DefaultConfig()
	narrativeCfg.Timeout = cfg.Narrative.Timeout
	narrativeCfg.CacheTTL = cfg.Narrative.CacheTTL

	var cache narrative.Cache
	if container.NarrativeCache != nil {
		cache = container.NarrativeCache
	}
	container.NarrativeRunner = narrative.NewRunner(container.Narrator, cache, narrativeCfg, log)

	sellers := analysis.SellerRegistry{
		Trusted:      cfg.TrustedSellers,
		Refurbishers: cfg.RefurbSellers,
	}
	container.Analyzer = analysis.NewAnalyzer(sellers, log)
	container.Summarizer = analysis.NewSummarizer(container.NarrativeRunner, log)
	container.Synthesizer = prediction.NewSynthesizer(container.Classifier, container.NarrativeRunner, log)
	container.PipelineService = pipeline.NewService(
		container.Analyzer,
		container.Summarizer,
		container.Synthesizer,
		container.Fetcher,
		log,
	)

	log.Info().
		Str("model", container.ModelName).
		Bool("narrative", container.Narrator != nil).
		Bool("search", container.Fetcher != nil).
		Msg("Services initialized")

	return nil
}

func loadModel(path string) (*prediction.LogisticModel, error) {
	if path == "" {
		model, err := prediction.LoadDefaultModel()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded classifier: %w", err)
		}
		return model, nil
	}

	model, err := prediction.LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier from %s: %w", path, err)
	}
	return model, nil
}
