package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype selecting the JSON codec
// ("application/grpc+json").
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries CalculateScheduleRequest and CalculateScheduleResponse
// in the same camelCase JSON the REST API serves: civil dates as
// "YYYY-MM-DD", row amounts as two-place numbers and consolidated as "k/N"
// or null. The health service keeps the default proto codec.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
