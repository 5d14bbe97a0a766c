package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scaffold files written next to the config.
const (
	SampleQuestionsName = "questions.json"
	SampleMetadataName  = "metadata.json"
	DefaultSubmissions  = "student_data"
)

const sampleQuestions = `[
  {"id": 1, "question": "Sample question 1", "answer": "A"},
  {"id": 2, "question": "Sample question 2", "answer": "B"},
  {"id": 3, "question": "Sample question 3", "answer": "C"},
  {"id": 4, "question": "Sample question 4", "answer": "D"}
]
`

const sampleMetadata = `{
  "total_questions": 4,
  "sections": {
    "Mathematics": {
      "range": [1, 2],
      "topics": {"1": "Algebra", "2": "Geometry"}
    },
    "English": {
      "range": [3, 4],
      "topics": {"3-4": "Grammar"}
    }
  }
}
`

// ScaffoldPaths lists the files written by Scaffold.
type ScaffoldPaths struct {
	Config         string
	Questions      string
	Metadata       string
	SubmissionsDir string
}

// Scaffold writes a starter config, sample question bank, and sample
// taxonomy, and creates the submissions directory under the repo root.
func Scaffold(specPath, outputDir string) (ScaffoldPaths, error) {
	if specPath == "" {
		return ScaffoldPaths{}, fmt.Errorf("spec path is required")
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if err := ensureAbsent(specPath, "spec"); err != nil {
		return ScaffoldPaths{}, err
	}

	configDir := filepath.Dir(specPath)
	root := RepoRootFromConfigPath(specPath)
	paths := ScaffoldPaths{
		Config:         specPath,
		Questions:      filepath.Join(configDir, SampleQuestionsName),
		Metadata:       filepath.Join(configDir, SampleMetadataName),
		SubmissionsDir: filepath.Join(root, DefaultSubmissions),
	}
	if err := ensureAbsent(paths.Questions, "questions"); err != nil {
		return ScaffoldPaths{}, err
	}
	if err := ensureAbsent(paths.Metadata, "metadata"); err != nil {
		return ScaffoldPaths{}, err
	}

	questionsRel, err := filepath.Rel(root, paths.Questions)
	if err != nil {
		return ScaffoldPaths{}, fmt.Errorf("resolve questions path: %w", err)
	}
	metadataRel, err := filepath.Rel(root, paths.Metadata)
	if err != nil {
		return ScaffoldPaths{}, fmt.Errorf("resolve metadata path: %w", err)
	}
	rendered, err := renderScaffoldConfig(scaffoldValues{
		OutputDir:      outputDir,
		Questions:      filepath.ToSlash(questionsRel),
		Metadata:       filepath.ToSlash(metadataRel),
		SubmissionsDir: DefaultSubmissions,
	})
	if err != nil {
		return ScaffoldPaths{}, fmt.Errorf("render config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return ScaffoldPaths{}, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(paths.SubmissionsDir, 0o755); err != nil {
		return ScaffoldPaths{}, fmt.Errorf("create submissions dir: %w", err)
	}
	if err := os.WriteFile(specPath, []byte(rendered), 0o644); err != nil {
		return ScaffoldPaths{}, fmt.Errorf("write spec file: %w", err)
	}
	if err := os.WriteFile(paths.Questions, []byte(sampleQuestions), 0o644); err != nil {
		return ScaffoldPaths{}, fmt.Errorf("write questions file: %w", err)
	}
	if err := os.WriteFile(paths.Metadata, []byte(sampleMetadata), 0o644); err != nil {
		return ScaffoldPaths{}, fmt.Errorf("write metadata file: %w", err)
	}
	return paths, nil
}

func ensureAbsent(path, label string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s path %q is a directory", label, path)
		}
		return fmt.Errorf("%s file already exists at %q", label, path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s file: %w", label, err)
	}
	return nil
}
