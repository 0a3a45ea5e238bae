package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
)

// CerealResponse is the public JSON form of a record. The image file name is not exposed;
// clients fetch the image through /cereal/{id}/image.
type CerealResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Mfr      string  `json:"mfr"`
	Type     string  `json:"type"`
	Calories int     `json:"calories"`
	Protein  int     `json:"protein"`
	Fat      int     `json:"fat"`
	Sodium   int     `json:"sodium"`
	Fiber    float64 `json:"fiber"`
	Carbo    float64 `json:"carbo"`
	Sugars   int     `json:"sugars"`
	Potass   int     `json:"potass"`
	Vitamins int     `json:"vitamins"`
	Shelf    int     `json:"shelf"`
	Weight   float64 `json:"weight"`
	Cups     float64 `json:"cups"`
	Rating   float64 `json:"rating"`
}

func CerealToResponse(c dom.Cereal) CerealResponse {
	return CerealResponse{
		ID:       c.ID,
		Name:     c.Name,
		Mfr:      c.Mfr,
		Type:     c.Type,
		Calories: c.Calories,
		Protein:  c.Protein,
		Fat:      c.Fat,
		Sodium:   c.Sodium,
		Fiber:    c.Fiber,
		Carbo:    c.Carbo,
		Sugars:   c.Sugars,
		Potass:   c.Potass,
		Vitamins: c.Vitamins,
		Shelf:    c.Shelf,
		Weight:   c.Weight,
		Cups:     c.Cups,
		Rating:   c.Rating,
	}
}

func CerealsToResponses(list []dom.Cereal) []CerealResponse {
	out := make([]CerealResponse, len(list))
	for i := range list {
		out[i] = CerealToResponse(list[i])
	}
	return out
}

// SaveCerealRequest documents the POST /cereal body. Decoding goes through DecodeCerealPayload.
type SaveCerealRequest struct {
	ID        *int64  `json:"id" example:"0"`
	Name      string  `json:"name" example:"Raisin Bran"`
	Mfr       string  `json:"mfr" example:"K"`
	Type      string  `json:"type" example:"C"`
	Calories  int     `json:"calories" example:"120"`
	Protein   int     `json:"protein" example:"3"`
	Fat       int     `json:"fat" example:"1"`
	Sodium    int     `json:"sodium" example:"210"`
	Fiber     float64 `json:"fiber" example:"5"`
	Carbo     float64 `json:"carbo" example:"14"`
	Sugars    int     `json:"sugars" example:"12"`
	Potass    int     `json:"potass" example:"240"`
	Vitamins  int     `json:"vitamins" example:"25"`
	Shelf     int     `json:"shelf" example:"2"`
	Weight    float64 `json:"weight" example:"1.33"`
	Cups      float64 `json:"cups" example:"0.75"`
	Rating    float64 `json:"rating" example:"39.259197"`
	ImagePath *string `json:"image_path"`
}

type SaveCerealResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldError rejects one key of a payload.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Msg }

func invalid(field string) *FieldError {
	return &FieldError{Field: field, Msg: "Invalid value for " + field}
}

type fieldDecoder func(p *dom.CerealPatch, raw json.RawMessage) bool

// payloadFields is the complete set of keys accepted from clients, apart from "id".
var payloadFields = map[string]fieldDecoder{
	"name":     textField(dom.MaxTextLen, func(p *dom.CerealPatch, v string) { p.Name = &v }),
	"mfr":      textField(dom.MaxTextLen, func(p *dom.CerealPatch, v string) { p.Mfr = &v }),
	"type":     textField(dom.MaxTextLen, func(p *dom.CerealPatch, v string) { p.Type = &v }),
	"calories": intField(func(p *dom.CerealPatch, v int) { p.Calories = &v }),
	"protein":  intField(func(p *dom.CerealPatch, v int) { p.Protein = &v }),
	"fat":      intField(func(p *dom.CerealPatch, v int) { p.Fat = &v }),
	"sodium":   intField(func(p *dom.CerealPatch, v int) { p.Sodium = &v }),
	"fiber":    floatField(func(p *dom.CerealPatch, v float64) { p.Fiber = &v }),
	"carbo":    floatField(func(p *dom.CerealPatch, v float64) { p.Carbo = &v }),
	"sugars":   intField(func(p *dom.CerealPatch, v int) { p.Sugars = &v }),
	"potass":   intField(func(p *dom.CerealPatch, v int) { p.Potass = &v }),
	"vitamins": intField(func(p *dom.CerealPatch, v int) { p.Vitamins = &v }),
	"shelf":    intField(func(p *dom.CerealPatch, v int) { p.Shelf = &v }),
	"weight":   floatField(func(p *dom.CerealPatch, v float64) { p.Weight = &v }),
	"cups":     floatField(func(p *dom.CerealPatch, v float64) { p.Cups = &v }),
	"rating":   floatField(func(p *dom.CerealPatch, v float64) { p.Rating = &v }),
	"image_path": func(p *dom.CerealPatch, raw json.RawMessage) bool {
		p.ImagePathSet = true
		if isNull(raw) {
			p.ImagePath = nil
			return true
		}
		s, ok := decodeString(raw)
		if !ok || utf8.RuneCountInString(s) > dom.MaxImagePathLen {
			return false
		}
		p.ImagePath = &s
		return true
	},
}

// DecodeCerealPayload maps a POST /cereal body onto a patch. Only known keys are accepted.
// An id that is absent, null or 0 is returned as 0.
func DecodeCerealPayload(body []byte) (int64, dom.CerealPatch, error) {
	var patch dom.CerealPatch
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return 0, patch, &FieldError{Msg: "invalid JSON body"}
	}

	var id int64
	if raw, ok := fields["id"]; ok {
		if !isNull(raw) {
			n, ok := decodeInt(raw)
			if !ok {
				return 0, patch, invalid("id")
			}
			id = n
		}
		delete(fields, "id")
	}

	// Walk the declared field order so the first reported error is stable.
	for _, f := range dom.CerealFields {
		raw, ok := fields[f.Name]
		if !ok {
			continue
		}
		if isNull(raw) || !payloadFields[f.Name](&patch, raw) {
			return 0, patch, invalid(f.Name)
		}
		delete(fields, f.Name)
	}
	if raw, ok := fields["image_path"]; ok {
		if !payloadFields["image_path"](&patch, raw) {
			return 0, patch, invalid("image_path")
		}
		delete(fields, "image_path")
	}
	if len(fields) > 0 {
		unknown := make([]string, 0, len(fields))
		for key := range fields {
			unknown = append(unknown, key)
		}
		sort.Strings(unknown)
		return 0, patch, &FieldError{Field: unknown[0], Msg: fmt.Sprintf("unknown field: %s", unknown[0])}
	}
	return id, patch, nil
}

func textField(maxLen int, set func(*dom.CerealPatch, string)) fieldDecoder {
	return func(p *dom.CerealPatch, raw json.RawMessage) bool {
		s, ok := decodeString(raw)
		if !ok || utf8.RuneCountInString(s) > maxLen {
			return false
		}
		set(p, s)
		return true
	}
}

func intField(set func(*dom.CerealPatch, int)) fieldDecoder {
	return func(p *dom.CerealPatch, raw json.RawMessage) bool {
		n, ok := decodeInt(raw)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return false
		}
		set(p, int(n))
		return true
	}
}

func floatField(set func(*dom.CerealPatch, float64)) fieldDecoder {
	return func(p *dom.CerealPatch, raw json.RawMessage) bool {
		v, ok := decodeFloat(raw)
		if ok {
			set(p, v)
		}
		return ok
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeFloat accepts JSON numbers only, never numeric strings.
func decodeFloat(raw json.RawMessage) (float64, bool) {
	lit := bytes.TrimSpace(raw)
	if len(lit) == 0 || !(lit[0] == '-' || (lit[0] >= '0' && lit[0] <= '9')) {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(lit), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// decodeInt accepts integral JSON numbers, including forms like 100.0.
func decodeInt(raw json.RawMessage) (int64, bool) {
	v, ok := decodeFloat(raw)
	if !ok || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return 0, false
	}
	return int64(v), true
}
