package server

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedRequest marks a payload that could not be turned into features.
var ErrMalformedRequest = errors.New("malformed request")

// Defaults for fields missing from a request.
const (
	DefaultRSI   = 50.0
	DefaultMAGap = 0.0
	DefaultTrend = 0.0
)

// Features are the raw market indicators of one request.
type Features struct {
	RSI   float64
	MAGap float64
	Trend float64
}

// Vector returns the network input: [rsi/100, ma_gap, trend].
func (f Features) Vector() []float64 {
	return []float64{f.RSI / 100, f.MAGap, f.Trend}
}

// number accepts a JSON number or a string holding one.
type number struct {
	set   bool
	value float64
}

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.Errorf("could not convert %s to float", data)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Errorf("%s is not a finite number", data)
	}
	n.set, n.value = true, v
	return nil
}

func (n number) or(def float64) float64 {
	if n.set {
		return n.value
	}
	return def
}

// DecodeFeatures parses a JSON object with optional rsi, ma_gap and trend
// fields. Missing fields take their defaults; unknown fields are ignored.
// Errors wrap ErrMalformedRequest.
func DecodeFeatures(body []byte) (Features, error) {
	var req struct {
		RSI   number `json:"rsi"`
		MAGap number `json:"ma_gap"`
		Trend number `json:"trend"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return Features{}, errors.Wrap(ErrMalformedRequest, err.Error())
	}
	return Features{
		RSI:   req.RSI.or(DefaultRSI),
		MAGap: req.MAGap.or(DefaultMAGap),
		Trend: req.Trend.or(DefaultTrend),
	}, nil
}
