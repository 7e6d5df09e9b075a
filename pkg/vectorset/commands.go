package vectorset

import (
	"encoding/binary"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Command names of the vector set family.
const (
	cmdAdd        = "VADD"
	cmdRem        = "VREM"
	cmdCard       = "VCARD"
	cmdDim        = "VDIM"
	cmdInfo       = "VINFO"
	cmdRange      = "VRANGE"
	cmdRandMember = "VRANDMEMBER"
	cmdSim        = "VSIM"
	cmdEmb        = "VEMB"
	cmdGetAttr    = "VGETATTR"
	cmdSetAttr    = "VSETATTR"
	cmdExpire     = "EXPIRE"
	cmdExists     = "EXISTS"
	cmdScan       = "SCAN"
)

// vectorSetType is the TYPE reported for vector set keys.
const vectorSetType = "vectorset"

func (v Values) vectorArgs() []any {
	args := make([]any, 0, len(v)+2)
	args = append(args, "VALUES", strconv.Itoa(len(v)))
	for _, f := range v {
		args = append(args, formatFloat(f))
	}
	return args
}

func (v Values) queryArgs() []any { return v.vectorArgs() }

func (b RawBlob) vectorArgs() []any {
	return []any{"FP32", []byte(b)}
}

func (b RawBlob) queryArgs() []any { return b.vectorArgs() }

func (e ByElement) queryArgs() []any {
	return []any{"ELE", string(e)}
}

// EncodeFP32 packs components as little-endian IEEE 754 float32 values,
// the layout expected by FP32 arguments.
func EncodeFP32(vector []float32) RawBlob {
	blob := make([]byte, 4*len(vector))
	for i, f := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(f))
	}
	return blob
}

// DecodeFP32 is the inverse of EncodeFP32. Trailing bytes that do not form a
// whole component are ignored.
func DecodeFP32(blob RawBlob) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// buildAdd renders one VADD:
//
//	VADD key (FP32 blob | VALUES n v...) name [Q8|NOQUANT|BIN] [SETATTR json]
func buildAdd(key string, el Element, quant Quantization) (Command, error) {
	cmd := Command{cmdAdd, key}
	cmd = append(cmd, el.Vector.vectorArgs()...)
	cmd = append(cmd, el.Name)
	if quant != QuantizationDefault {
		cmd = append(cmd, string(quant))
	}
	if len(el.Attributes) > 0 {
		attrs, err := json.Marshal(el.Attributes)
		if err != nil {
			return nil, invalid("attributes of element %q: %v", el.Name, err)
		}
		cmd = append(cmd, "SETATTR", string(attrs))
	}
	return cmd, nil
}

func buildExpire(key string, ttl time.Duration) Command {
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return Command{cmdExpire, key, strconv.FormatInt(seconds, 10)}
}

// buildCreate renders the creation batch: one VADD per element, then EXPIRE
// when a TTL is requested.
func buildCreate(req CreateRequest) ([]Command, error) {
	cmds := make([]Command, 0, len(req.Elements)+1)
	for _, el := range req.Elements {
		cmd, err := buildAdd(req.Key, el, req.Quantization)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if req.TTL > 0 {
		cmds = append(cmds, buildExpire(req.Key, req.TTL))
	}
	return cmds, nil
}

func buildRemove(key string, names []string) []Command {
	cmds := make([]Command, 0, len(names))
	for _, name := range names {
		cmds = append(cmds, Command{cmdRem, key, name})
	}
	return cmds
}

// buildAdvancedList renders VCARD + VRANGE over the full lexicographic range.
func buildAdvancedList(key string, count int) []Command {
	return []Command{
		{cmdCard, key},
		{cmdRange, key, "-", "+", strconv.Itoa(count)},
	}
}

// buildFallbackList renders VCARD + VRANDMEMBER. A negative count makes
// VRANDMEMBER return duplicates, so the absolute value is always sent.
func buildFallbackList(key string, count int) []Command {
	if count < 0 {
		count = -count
	}
	return []Command{
		{cmdCard, key},
		{cmdRandMember, key, strconv.Itoa(count)},
	}
}

// buildSearch renders VSIM. Options keep the order COUNT, EF, FILTER,
// WITHSCORES, WITHATTRIBS; decodeSearch relies on scores preceding attributes.
func buildSearch(req SearchRequest) Command {
	cmd := Command{cmdSim, req.Key}
	cmd = append(cmd, req.Query.queryArgs()...)
	cmd = append(cmd, "COUNT", strconv.Itoa(req.Count))
	if req.EF != nil {
		cmd = append(cmd, "EF", strconv.Itoa(*req.EF))
	}
	if req.Filter != "" {
		cmd = append(cmd, "FILTER", req.Filter)
	}
	if req.WithScores {
		cmd = append(cmd, "WITHSCORES")
	}
	if req.WithAttributes {
		cmd = append(cmd, "WITHATTRIBS")
	}
	return cmd
}

func buildGetVector(key, name string) Command {
	return Command{cmdEmb, key, name}
}

func buildGetAttributes(key, name string) Command {
	return Command{cmdGetAttr, key, name}
}

// buildSetAttributes renders VSETATTR. Empty attributes are sent as an empty
// string, which removes them from the element.
func buildSetAttributes(key, name string, attrs Attributes) (Command, error) {
	payload := ""
	if len(attrs) > 0 {
		raw, err := json.Marshal(attrs)
		if err != nil {
			return nil, invalid("attributes of element %q: %v", name, err)
		}
		payload = string(raw)
	}
	return Command{cmdSetAttr, key, name, payload}, nil
}

func buildExists(key string) Command {
	return Command{cmdExists, key}
}

func buildInfo(key string) []Command {
	return []Command{
		{cmdCard, key},
		{cmdDim, key},
		{cmdInfo, key},
	}
}

func buildScan(cursor uint64, match string, count int) Command {
	cmd := Command{cmdScan, strconv.FormatUint(cursor, 10)}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	return append(cmd, "COUNT", strconv.Itoa(count), "TYPE", vectorSetType)
}
