package utils

import "crypto/rand"

const base62Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// bytes at or above this value are rejected so every character is equally likely
const maxUnbiased = 256 - 256%len(base62Chars)

// GenerateKey returns prefix followed by n random base62 characters.
func GenerateKey(prefix string, n int) (string, error) {
	out := make([]byte, 0, len(prefix)+n)
	out = append(out, prefix...)

	buf := make([]byte, n)
	for len(out) < len(prefix)+n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, base62Chars[int(b)%len(base62Chars)])
			if len(out) == len(prefix)+n {
				break
			}
		}
	}
	return string(out), nil
}
