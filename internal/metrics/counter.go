// Package metrics measures the size of selected files in bytes, lines and
// model tokens.
package metrics

import (
	"bytes"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Count is the size of one piece of text.
type Count struct {
	Bytes  int `json:"bytes"`
	Tokens int `json:"tokens"`
	Lines  int `json:"lines"`
}

// Add accumulates o into c.
func (c *Count) Add(o Count) {
	c.Bytes += o.Bytes
	c.Tokens += o.Tokens
	c.Lines += o.Lines
}

// Counter measures text.
type Counter interface {
	Count(text []byte) Count
}

// SimpleCounter estimates tokens as bytes/4.
type SimpleCounter struct{}

func (SimpleCounter) Count(text []byte) Count {
	return Count{
		Bytes:  len(text),
		Tokens: len(text) / 4,
		Lines:  countLines(text),
	}
}

// TiktokenCounter counts tokens with the encoding of an OpenAI model.
type TiktokenCounter struct {
	model string
	enc   *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the encoding for model.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("unsupported model for tiktoken: %s", model)
	}
	return &TiktokenCounter{model: model, enc: enc}, nil
}

// Model returns the model whose encoding is used.
func (c *TiktokenCounter) Model() string { return c.model }

func (c *TiktokenCounter) Count(text []byte) Count {
	return Count{
		Bytes:  len(text),
		Tokens: len(c.enc.Encode(string(text), nil, nil)),
		Lines:  countLines(text),
	}
}

// NewCounter returns the counter for name: "simple", or a model name known to
// tiktoken. An empty name selects "simple".
func NewCounter(name string) (Counter, error) {
	if name == "" || name == "simple" {
		return SimpleCounter{}, nil
	}
	return NewTiktokenCounter(name)
}

// countLines counts a final line without a newline; empty text has none.
func countLines(text []byte) int {
	if len(text) == 0 {
		return 0
	}
	n := bytes.Count(text, []byte{'\n'})
	if text[len(text)-1] != '\n' {
		n++
	}
	return n
}
