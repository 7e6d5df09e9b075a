package vectorset

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// decodeList turns the VCARD + (VRANGE | VRANDMEMBER) replies into a ListResult.
// A null member reply is an empty listing, not an error.
func decodeList(replies []Reply) (*ListResult, error) {
	if len(replies) != 2 {
		return nil, fmt.Errorf("unexpected listing reply count: got %d, want 2", len(replies))
	}
	for _, r := range replies {
		if r.Err != nil {
			return nil, r.Err
		}
	}

	result := &ListResult{Elements: []string{}}
	if replies[0].Value != nil {
		total, err := toInt64(replies[0].Value)
		if err != nil {
			return nil, fmt.Errorf("decode cardinality: %w", err)
		}
		result.Total = total
	}

	if replies[1].Value == nil {
		return result, nil
	}
	members, ok := replies[1].Value.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected member list type: %T", replies[1].Value)
	}
	for i, m := range members {
		name, err := toString(m)
		if err != nil {
			return nil, fmt.Errorf("decode member %d: %w", i, err)
		}
		result.Elements = append(result.Elements, name)
	}
	return result, nil
}

// searchStride is the number of reply slots consumed per hit.
func searchStride(withScores, withAttributes bool) int {
	stride := 1
	if withScores {
		stride++
	}
	if withAttributes {
		stride++
	}
	return stride
}

// decodeSearch walks a flat VSIM reply. Each hit is laid out as
//
//	name [score] [attributes]
//
// where the score is textual and attributes are a JSON object or null.
func decodeSearch(raw any, withScores, withAttributes bool) (*SearchResult, error) {
	result := &SearchResult{
		Hits:           []SearchHit{},
		WithScores:     withScores,
		WithAttributes: withAttributes,
	}
	if raw == nil {
		return result, nil
	}

	flat, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected search reply type: %T", raw)
	}

	stride := searchStride(withScores, withAttributes)
	if len(flat)%stride != 0 {
		return nil, fmt.Errorf("search reply length %d is not a multiple of stride %d", len(flat), stride)
	}

	result.Hits = make([]SearchHit, 0, len(flat)/stride)
	for i := 0; i < len(flat); i += stride {
		name, err := toString(flat[i])
		if err != nil {
			return nil, fmt.Errorf("decode hit %d name: %w", i/stride, err)
		}
		hit := SearchHit{Name: name}

		slot := i + 1
		if withScores {
			score, err := toFloat64(flat[slot])
			if err != nil {
				return nil, fmt.Errorf("decode hit %q score: %w", name, err)
			}
			hit.Score = &score
			slot++
		}
		if withAttributes {
			attrs, err := decodeAttributes(flat[slot])
			if err != nil {
				return nil, fmt.Errorf("decode hit %q attributes: %w", name, err)
			}
			hit.Attributes = attrs
		}

		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

// decodeVector parses a VEMB reply. A null reply means the element is absent,
// which the caller must report as not found rather than as an empty vector.
func decodeVector(raw any) ([]float64, error) {
	if raw == nil {
		return nil, ErrElementNotFound
	}
	components, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected vector reply type: %T", raw)
	}

	vector := make([]float64, len(components))
	for i, c := range components {
		f, err := toFloat64(c)
		if err != nil {
			return nil, fmt.Errorf("decode component %d: %w", i, err)
		}
		vector[i] = f
	}
	return vector, nil
}

// decodeAttributes parses a JSON attribute blob. Null and empty replies mean
// the element has no attributes.
func decodeAttributes(raw any) (Attributes, error) {
	if raw == nil {
		return nil, nil
	}
	text, err := toString(raw)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	var attrs Attributes
	if err := json.Unmarshal([]byte(text), &attrs); err != nil {
		return nil, fmt.Errorf("parse attributes: %w", err)
	}
	return attrs, nil
}

// decodeInfo merges VCARD, VDIM and the flat field/value VINFO reply.
func decodeInfo(key string, replies []Reply) (*Info, error) {
	if len(replies) != 3 {
		return nil, fmt.Errorf("unexpected info reply count: got %d, want 3", len(replies))
	}
	for _, r := range replies {
		if r.Err != nil {
			return nil, r.Err
		}
	}

	info := &Info{Key: key, Raw: map[string]any{}}
	var err error
	if replies[0].Value != nil {
		if info.Cardinality, err = toInt64(replies[0].Value); err != nil {
			return nil, fmt.Errorf("decode cardinality: %w", err)
		}
	}
	if replies[1].Value != nil {
		if info.Dimension, err = toInt64(replies[1].Value); err != nil {
			return nil, fmt.Errorf("decode dimension: %w", err)
		}
	}

	fields, _ := replies[2].Value.([]any)
	for i := 0; i+1 < len(fields); i += 2 {
		name, err := toString(fields[i])
		if err != nil {
			return nil, fmt.Errorf("decode info field %d: %w", i/2, err)
		}
		info.Raw[name] = fields[i+1]
	}
	if q, ok := info.Raw["quant-type"]; ok {
		info.Quantization, _ = toString(q)
	}
	return info, nil
}

// decodeScan splits a SCAN reply into the next cursor and the keys of this page.
func decodeScan(raw any) (uint64, []string, error) {
	page, ok := raw.([]any)
	if !ok || len(page) != 2 {
		return 0, nil, fmt.Errorf("unexpected scan reply: %v", raw)
	}
	cursorText, err := toString(page[0])
	if err != nil {
		return 0, nil, fmt.Errorf("decode cursor: %w", err)
	}
	cursor, err := strconv.ParseUint(cursorText, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("decode cursor: %w", err)
	}

	items, _ := page[1].([]any)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		k, err := toString(item)
		if err != nil {
			return 0, nil, fmt.Errorf("decode key: %w", err)
		}
		keys = append(keys, k)
	}
	return cursor, keys, nil
}

func toString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", fmt.Errorf("unexpected value type %T", v)
	}
}

func toInt64(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int:
		return int64(val), nil
	case float64:
		return int64(val), nil
	case string:
		return strconv.ParseInt(val, 10, 64)
	case []byte:
		return strconv.ParseInt(string(val), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected integer type %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	case string:
		return strconv.ParseFloat(val, 64)
	case []byte:
		return strconv.ParseFloat(string(val), 64)
	default:
		return 0, fmt.Errorf("unexpected float type %T", v)
	}
}
