// Package codec round-trips full game state through a compact,
// transport-safe token embedded as the first fenced line of a rendered
// message. The backend keeps no session state: whatever the token says
// is the game.
//
// Note that nothing guards against two interactions racing on the same
// message: both decode the same pre-mutation token and the second
// render wins. This is an accepted limitation of the stateless design.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pocketarcade/pocketarcade/internal/model"
)

// Fence delimits the state token line inside rendered message content
const Fence = "```"

// DecodeError reports a token that could not be decoded. Corrupt or
// forged tokens are an expected input class, so decoding never panics.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode state token: %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode serializes state into a URL-safe, whitespace-free token:
// msgpack, gzip, then unpadded URL-safe base64.
func Encode(state any) (string, error) {
	raw, err := msgpack.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress state: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode into state. If the binary deserialization
// fails, the decompressed bytes are retried as JSON: tokens from before
// the binary encoding are still embedded in old messages and must stay
// loadable indefinitely. The fallback is permanent, not a migration.
func Decode(token string, state any) error {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return &DecodeError{Stage: "base64", Err: err}
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return &DecodeError{Stage: "gzip", Err: err}
	}
	raw, err := io.ReadAll(zr)
	if err != nil {
		return &DecodeError{Stage: "gzip", Err: err}
	}

	if err := msgpack.Unmarshal(raw, state); err != nil {
		// a failed binary decode can leave fields half-written
		if v := reflect.ValueOf(state); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
		if jsonErr := json.Unmarshal(raw, state); jsonErr == nil {
			return nil
		}
		// report the primary format's error, not the fallback's
		return &DecodeError{Stage: "msgpack", Err: err}
	}
	return nil
}

// Embed produces the title card that leads every rendered message: the
// token on the first fenced line, then the game title. Rendering always
// prepends this verbatim so Extract can find it again.
func Embed(token, title string) string {
	return fmt.Sprintf("%s%s\n%s\n%s\n", Fence, token, title, Fence)
}

// EncodeInto encodes state and returns its title card in one step
func EncodeInto(state any, title string) (string, error) {
	token, err := Encode(state)
	if err != nil {
		return "", err
	}
	return Embed(token, title), nil
}

// Extract pulls the state token back out of previously rendered message
// content: take the first line, strip the fence prefix.
func Extract(content string) (string, error) {
	line, _, _ := strings.Cut(content, "\n")
	token, ok := strings.CutPrefix(line, Fence)
	if !ok || token == "" {
		return "", model.ErrNoGameData
	}
	return token, nil
}

// ExtractInto extracts and decodes in one step
func ExtractInto(content string, state any) error {
	token, err := Extract(content)
	if err != nil {
		return err
	}
	return Decode(token, state)
}
