package model

// AIPlayerID is the player id shown for the computer side.
const AIPlayerID = "ai"

type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
	IsAI  bool   `json:"isAI"`
}
