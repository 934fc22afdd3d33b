package httpserver

import "github.com/robalobadob/wordscramble/server/internal/game"

// message is the user-facing text for a rejection.
type message struct {
	Title   string
	Message string
}

var rejectionMessages = map[game.Reason]message{
	game.ReasonTooShort:      {"Word has 3 letters or less", "Make it longer"},
	game.ReasonSameAsRoot:    {"Word is the same as the root word", "Be original"},
	game.ReasonAlreadyUsed:   {"Word used already", "Be more original"},
	game.ReasonNotComposable: {"Word not possible", "You can't just make them up, you know!"},
	game.ReasonNotAWord:      {"Word not recognized", "That isn't a real word."},
}

func messageFor(r game.Reason) message {
	return rejectionMessages[r]
}
