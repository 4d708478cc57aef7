package player

import (
	"fmt"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Position is the closed set of formation categories used by every screen.
type Position string

const (
	PositionPortero        Position = "portero"
	PositionDefensa        Position = "defensa"
	PositionCentrocampista Position = "centrocampista"
	PositionDelantero      Position = "delantero"
	PositionUnknown        Position = "unknown"
)

var AllPositions = map[Position]struct{}{
	PositionPortero:        {},
	PositionDefensa:        {},
	PositionCentrocampista: {},
	PositionDelantero:      {},
}

// RawPosition holds the position field exactly as the backend sent it. The
// backend is not consistent about the shape: a numeric code, a bare string
// (numeric or a name in English or Spanish) or an {id, description} object
// all occur in the wild.
type RawPosition struct {
	Code        int64
	Text        string
	Description string
}

func (r *RawPosition) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*r = RawPosition{}
		return nil
	}

	switch trimmed[0] {
	case '{':
		var obj struct {
			ID          int64  `json:"id"`
			Description string `json:"description"`
		}
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode position object: %w", err)
		}
		*r = RawPosition{Code: obj.ID, Description: obj.Description}
	case '"':
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("decode position string: %w", err)
		}
		*r = RawPosition{Text: text}
	default:
		var code int64
		if err := sonic.Unmarshal(data, &code); err != nil {
			return fmt.Errorf("decode position code: %w", err)
		}
		*r = RawPosition{Code: code}
	}

	return nil
}

func (r RawPosition) MarshalJSON() ([]byte, error) {
	switch {
	case r.Description != "":
		return sonic.Marshal(struct {
			ID          int64  `json:"id,omitempty"`
			Description string `json:"description"`
		}{ID: r.Code, Description: r.Description})
	case r.Text != "":
		return sonic.Marshal(r.Text)
	case r.Code != 0:
		return sonic.Marshal(r.Code)
	}

	return []byte("null"), nil
}

// Normalize maps the raw shape to a canonical category. Total: anything
// unrecognized comes back as PositionUnknown, never an error.
func (r RawPosition) Normalize() Position {
	if r.Description != "" {
		if pos, ok := positionByName[foldPositionName(r.Description)]; ok {
			return pos
		}
	}
	if r.Text != "" {
		if pos, ok := positionByName[foldPositionName(r.Text)]; ok {
			return pos
		}
		if code, err := strconv.ParseInt(strings.TrimSpace(r.Text), 10, 64); err == nil {
			if pos, ok := positionByCode[code]; ok {
				return pos
			}
		}
	}
	if pos, ok := positionByCode[r.Code]; ok {
		return pos
	}

	return PositionUnknown
}

// Normalize accepts the shapes handlers meet outside of JSON decoding:
// a numeric code, a string, a RawPosition or a Position that is already
// canonical.
func Normalize(value any) Position {
	switch v := value.(type) {
	case nil:
		return PositionUnknown
	case Position:
		if _, ok := AllPositions[v]; ok {
			return v
		}
		return RawPosition{Text: string(v)}.Normalize()
	case RawPosition:
		return v.Normalize()
	case string:
		return RawPosition{Text: v}.Normalize()
	case int:
		return RawPosition{Code: int64(v)}.Normalize()
	case int64:
		return RawPosition{Code: v}.Normalize()
	case float64:
		return RawPosition{Code: int64(v)}.Normalize()
	}

	return PositionUnknown
}

func foldPositionName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var positionByCode = map[int64]Position{
	1: PositionPortero,
	2: PositionDefensa,
	3: PositionCentrocampista,
	4: PositionDelantero,
}

var positionByName = map[string]Position{
	"portero":        PositionPortero,
	"goalkeeper":     PositionPortero,
	"arquero":        PositionPortero,
	"gk":             PositionPortero,
	"defensa":        PositionDefensa,
	"defender":       PositionDefensa,
	"defensor":       PositionDefensa,
	"def":            PositionDefensa,
	"centrocampista": PositionCentrocampista,
	"midfielder":     PositionCentrocampista,
	"mediocampista":  PositionCentrocampista,
	"mid":            PositionCentrocampista,
	"delantero":      PositionDelantero,
	"attacker":       PositionDelantero,
	"forward":        PositionDelantero,
	"fwd":            PositionDelantero,
}
