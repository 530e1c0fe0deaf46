package strategy

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "options-analyzer/internal/errors"
	"options-analyzer/internal/models"
)

// strategyFile is the on-disk shape of a strategy:
//
//	name: my straddle
//	legs:
//	  - {kind: call, strike: 100, premium: 5, side: long}
//	  - {kind: put, strike: 100, premium: 5}
type strategyFile struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Legs        []fileLeg `yaml:"legs"`
}

// Strike and premium are pointers so a missing key is an error, not zero.
type fileLeg struct {
	Kind    string   `yaml:"kind"`
	Strike  *float64 `yaml:"strike"`
	Premium *float64 `yaml:"premium"`
	Side    string   `yaml:"side"`
}

// LoadFile reads a YAML strategy definition.
func LoadFile(path string) (*models.OptionStrategy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening strategy file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a YAML strategy definition. Side defaults to long.
func Decode(r io.Reader) (*models.OptionStrategy, error) {
	var sf strategyFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decoding strategy: %w", err)
	}
	if len(sf.Legs) == 0 {
		return nil, apperrors.NewValidationError("legs", 0, "strategy needs at least one leg")
	}

	out := &models.OptionStrategy{
		Name:        sf.Name,
		Description: sf.Description,
		Legs:        make([]models.OptionLeg, 0, len(sf.Legs)),
	}
	for i, fl := range sf.Legs {
		kind, err := models.ParseOptionKind(fl.Kind)
		if err != nil {
			return nil, apperrors.NewLegError(i, apperrors.NewValidationError("kind", fl.Kind, err.Error()))
		}
		if fl.Strike == nil {
			return nil, apperrors.NewLegError(i, apperrors.NewValidationError("strike", nil, "missing"))
		}
		if fl.Premium == nil {
			return nil, apperrors.NewLegError(i, apperrors.NewValidationError("premium", nil, "missing"))
		}
		side := models.PositionLong
		if fl.Side != "" {
			side, err = models.ParsePositionSide(fl.Side)
			if err != nil {
				return nil, apperrors.NewLegError(i, apperrors.NewValidationError("side", fl.Side, err.Error()))
			}
		}
		out.Legs = append(out.Legs, models.OptionLeg{
			Kind:    kind,
			Strike:  *fl.Strike,
			Premium: *fl.Premium,
			Side:    side,
		})
	}
	return out, nil
}
