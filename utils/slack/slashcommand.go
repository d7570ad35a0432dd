package slack

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/schema"

	"github.com/koenrh/sentry/core"
	"github.com/koenrh/sentry/models"
)

var payloadDecoder = newPayloadDecoder()

func newPayloadDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// ParseFormStrict decodes an application/x-www-form-urlencoded body, rejecting
// anything url.ParseQuery would silently tolerate or skip: invalid UTF-8,
// empty fields, fields without "=" and malformed percent-encoding.
// Fields with empty values are dropped. An empty body yields empty values.
func ParseFormStrict(body []byte) (url.Values, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", core.ErrMalformedPayload)
	}

	values := url.Values{}
	if len(body) == 0 {
		return values, nil
	}

	for _, field := range strings.Split(string(body), "&") {
		rawKey, rawValue, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("%w: bad field %q", core.ErrMalformedPayload, field)
		}

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: bad key %q: %v", core.ErrMalformedPayload, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value for %q: %v", core.ErrMalformedPayload, key, err)
		}

		if value == "" {
			continue
		}
		values.Add(key, value)
	}

	return values, nil
}

// DecodeSlashCommandPayload maps parsed form values onto the slash command metadata
func DecodeSlashCommandPayload(values url.Values) (models.SlashCommandPayload, error) {
	var payload models.SlashCommandPayload
	if err := payloadDecoder.Decode(&payload, values); err != nil {
		return models.SlashCommandPayload{}, fmt.Errorf("%w: %v", core.ErrMalformedPayload, err)
	}
	return payload, nil
}

// ParseCommandRequest strictly decodes a slash command body into a command request.
// The command text is always the first "text" value.
func ParseCommandRequest(body []byte) (models.CommandRequest, error) {
	values, err := ParseFormStrict(body)
	if err != nil {
		return models.CommandRequest{}, err
	}

	payload, err := DecodeSlashCommandPayload(values)
	if err != nil {
		return models.CommandRequest{}, err
	}

	return models.CommandRequest{
		Text:    values.Get("text"),
		Payload: payload,
	}, nil
}
