package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	digestIDSize = 12
)

// GenerateDigestID gera o identificador de um resumo mensal, ex: "dig_V1StGXR8Z5jd"
func GenerateDigestID() (string, error) {
	id, err := gonanoid.Generate(characters, digestIDSize)
	if err != nil {
		return "", err
	}
	return "dig_" + id, nil
}
