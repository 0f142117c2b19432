package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// NumTokens estimates how many tokens text occupies in a chat message.
// The gpt-4 encoding is close enough for logging across backends.
func NumTokens(text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel("gpt-4-0613")
	if err != nil {
		return 0, err
	}
	return len(tkm.Encode(text, nil, nil)), nil
}
