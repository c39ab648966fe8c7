package models

// Alphabet for generated team codes, e.g. "4F7KQ2".
var Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const TeamCodeLength = 6

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

var ValidProblemCategories = map[string]bool{
	"Software": true,
	"Hardware": true,
}
