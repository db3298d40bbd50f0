package filmography

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"

	"movielynx/backend/internal/constants"
	"movielynx/backend/internal/state"
	apperrors "movielynx/backend/pkg/errors"
	"movielynx/backend/pkg/logger"
)

// Parser assembles listing lines into a Filmography
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a parser. A nil logger selects the global one.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = logger.For("parser")
	}
	return &Parser{logger: log}
}

// ParseFile parses the listing at path
func (p *Parser) ParseFile(path string) (state.Filmography, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewSourceRead(path, err)
	}
	return p.Parse(path, f)
}

// Parse reads a listing stream to the end and returns its person -> titles
// mapping. Everything up to and including the section start line is skipped;
// a stream without one yields an empty mapping. rc is closed before Parse
// returns. On a read error no mapping is returned.
func (p *Parser) Parse(source string, rc io.ReadCloser) (state.Filmography, error) {
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxLineBytes)

	films := state.Filmography{}
	inSection := false

	var (
		person  string
		credits []string
		open    bool
	)
	flush := func() {
		if open && len(credits) > 0 {
			films[person] = credits
		}
	}

	lines := 0
	for scanner.Scan() {
		line := scanner.Text()
		lines++

		if !inSection {
			inSection = IsSectionStart(line)
			continue
		}

		if name, ok := ExtractPerson(line); ok {
			flush()
			person, credits, open = name, nil, true
		}
		// The same line may both open a person and carry its first credit.
		if title, ok := ExtractFilm(line); ok && open {
			credits = append(credits, title)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewSourceRead(source, err)
	}
	flush()

	if !inSection {
		p.logger.Warn("No section start line found",
			zap.String("source", source),
			zap.Int("lines", lines),
		)
	}
	p.logger.Debug("Listing parsed",
		zap.String("source", source),
		zap.Int("lines", lines),
		zap.Int("persons", len(films)),
		zap.Int("credits", films.CreditCount()),
	)
	return films, nil
}
