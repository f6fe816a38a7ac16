// Package sentence runs a pretrained sentence-transformers model in process through hugot.
package sentence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/embedding"
)

const (
	// DefaultModel produces 384-dimensional sentence embeddings.
	DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"
	// DefaultModelDir is where models are looked up and downloaded to.
	DefaultModelDir = "models"

	defaultOnnxFile = "onnx/model.onnx"
	pipelineName    = "resume-matcher-embeddings"
)

// Config selects the model and where it lives on disk.
type Config struct {
	// Model is a Hugging Face model id.
	Model string
	// ModelDir holds downloaded models, one directory per model.
	ModelDir string
	// OnnxFile is the path of the ONNX graph inside the model repository.
	OnnxFile string
	// Dimension is the size of the vectors the model returns.
	Dimension int
	// Download fetches the model when it is not found in ModelDir.
	Download bool
}

type runFunc func(texts []string) ([][]float32, error)

// Embedder is safe for concurrent use; inference calls are serialized.
type Embedder struct {
	mu    sync.Mutex
	run   runFunc
	dim   int
	close func() error
}

var _ embedding.Embedder = (*Embedder)(nil)

// New loads the model into a pure Go hugot session. The returned Embedder must be closed.
func New(cfg Config, logger *zap.Logger) (*Embedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ModelDir == "" {
		cfg.ModelDir = DefaultModelDir
	}
	if cfg.OnnxFile == "" {
		cfg.OnnxFile = defaultOnnxFile
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = embedding.DefaultDimension
	}

	modelPath, err := resolveModel(cfg, logger)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("create hugot session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath:    modelPath,
		Name:         pipelineName,
		OnnxFilename: filepath.Base(cfg.OnnxFile),
		Options: []hugot.FeatureExtractionOption{
			pipelines.WithNormalization(),
		},
	})
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("create feature extraction pipeline for %s: %w", cfg.Model, err)
	}

	logger.Info("sentence embedding model loaded",
		zap.String("model", cfg.Model),
		zap.String("path", modelPath),
		zap.Int("dimension", cfg.Dimension),
	)

	run := func(texts []string) ([][]float32, error) {
		out, err := pipeline.RunPipeline(texts)
		if err != nil {
			return nil, err
		}
		return out.Embeddings, nil
	}

	return newEmbedder(run, cfg.Dimension, session.Destroy), nil
}

func newEmbedder(run runFunc, dim int, close func() error) *Embedder {
	return &Embedder{run: run, dim: dim, close: close}
}

// resolveModel returns the local model directory, downloading the model when allowed.
func resolveModel(cfg Config, logger *zap.Logger) (string, error) {
	local := filepath.Join(cfg.ModelDir, strings.ReplaceAll(cfg.Model, "/", "_"))
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}

	if !cfg.Download {
		return "", fmt.Errorf("model %s not found in %s and downloads are disabled", cfg.Model, cfg.ModelDir)
	}

	logger.Info("downloading sentence embedding model", zap.String("model", cfg.Model), zap.String("dir", cfg.ModelDir))

	if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	options := hugot.NewDownloadOptions()
	options.OnnxFilePath = cfg.OnnxFile

	path, err := hugot.DownloadModel(cfg.Model, cfg.ModelDir, options)
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", cfg.Model, err)
	}

	return path, nil
}

func (e *Embedder) Dimension() int { return e.dim }

func (e *Embedder) Embed(ctx context.Context, text string) (embedding.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	out, err := e.run([]string{text})
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run embedding model: %w", err)
	}

	if len(out) == 0 {
		return nil, errors.New("embedding model returned no vectors")
	}

	v := make(embedding.Vector, len(out[0]))
	for i, x := range out[0] {
		v[i] = float64(x)
	}

	return v, nil
}

// Close releases the inference session.
func (e *Embedder) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}
