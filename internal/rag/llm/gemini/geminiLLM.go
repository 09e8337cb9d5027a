package gemini

import (
	"context"
	"sync"

	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/rag/llm"
	"github.com/nkatturi/NotesAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	hasKey    bool
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName, hasKey: geminiClient.hasKey}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	//the client is still constructed without a key so retrieval can run;
	//Complete reports the missing credential instead
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName, hasKey: apikey != ""}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

// Complete sends the already-assembled prompt verbatim and returns the model
// text verbatim. Prompt structure belongs to the retrieval pipeline, not here.
func (c *llmClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if !c.hasKey {
		log.Warn("Generation requested without an API key")
		return "", llm.ErrMissingCredential
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llmc *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llmc.client = nil
	llmc.modelName = ""
}
