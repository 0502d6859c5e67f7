package corpus

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/trace/internal/model"
)

// Source supplies a random paragraph for each practice attempt.
type Source interface {
	ChooseRandom() (model.Paragraph, error)
}

// Chooser picks paragraphs uniformly from an in-memory corpus.
type Chooser struct {
	paragraphs []model.Paragraph
	rnd        *rand.Rand
}

// NewChooser returns a Chooser; a nil rnd is seeded with the current time.
func NewChooser(paragraphs []model.Paragraph, rnd *rand.Rand) *Chooser {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Chooser{paragraphs: paragraphs, rnd: rnd}
}

// ChooseRandom returns a uniformly selected paragraph.
func (c *Chooser) ChooseRandom() (model.Paragraph, error) {
	if len(c.paragraphs) == 0 {
		return model.Paragraph{}, ErrEmpty
	}
	return c.paragraphs[c.rnd.Intn(len(c.paragraphs))], nil
}

// FileSource reloads the corpus file on every pick so edits apply to the next attempt.
type FileSource struct {
	path string
	rnd  *rand.Rand
}

// NewFileSource returns a Source reading the corpus at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Path returns the corpus file path.
func (s *FileSource) Path() string {
	return s.path
}

// ChooseRandom loads the corpus and picks one paragraph.
func (s *FileSource) ChooseRandom() (model.Paragraph, error) {
	paragraphs, err := Load(s.path)
	if err != nil {
		return model.Paragraph{}, err
	}
	return NewChooser(paragraphs, s.rnd).ChooseRandom()
}
