package schema

import (
	"fmt"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

const ConfirmationSchemaTextV1 = `{
	"type": "record",
	"namespace": "checkout",
	"name": "confirmation",
	"fields" : [
		{"name": "id", "type": "string"},
		{"name": "provider", "type": "string"},
		{"name": "amount", "type": "double"},
		{"name": "message", "type": "string"},
		{"name": "created_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ConfirmationV1 struct {
	ID        string    `avro:"id"`
	Provider  string    `avro:"provider"`
	Amount    float64   `avro:"amount"`
	Message   string    `avro:"message"`
	CreatedAt time.Time `avro:"created_at"`
}

var ConfirmationSchemaV1 = sr.Schema{
	Type:   sr.TypeAvro,
	Schema: ConfirmationSchemaTextV1,
}

var confirmationV1Avro = mustParse(ConfirmationSchemaTextV1)

func ConfirmationV1Avro() avro.Schema {
	return confirmationV1Avro
}

func ConfirmationV1AvroEncodeFn() func(v any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		return avro.Marshal(confirmationV1Avro, v)
	}
}

func ConfirmationV1AvroDecodeFn() func([]byte, any) error {
	return func(data []byte, v any) error {
		return avro.Unmarshal(confirmationV1Avro, data, v)
	}
}

func mustParse(text string) avro.Schema {
	s, err := avro.Parse(text)
	if err != nil {
		err = fmt.Errorf(
			"failed to parse avro schema, contact with package dev team: %w",
			err,
		)
		panic(err)
	}
	return s
}
