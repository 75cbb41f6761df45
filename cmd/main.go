package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/pseudo-blackjack/application"
	"github.com/luca-patrignani/pseudo-blackjack/config"
	"github.com/luca-patrignani/pseudo-blackjack/domain/blackjack"
	"github.com/luca-patrignani/pseudo-blackjack/domain/deck"
)

// Menu entries, named after the buttons of the table.
const (
	serveCards = "Serve cards"
	oneMore    = "One more card!"
	endTurn    = "End turn!"
	undo       = "Undo last action"
	newGame    = "Start new game!"
	history    = "Show history"
	quitGame   = "Quit game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	// Create a new slog logger on top of the PTerm logger
	handler := pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(cfg.Level()))
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Pseudo", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("Jack", pterm.FgRed.ToStyle()),
	).Render()

	engine, err := blackjack.NewEngine(cfg.Players,
		blackjack.WithSource(deck.NewRandom()),
		blackjack.WithRules(blackjack.Rules{RevokeTieOnHigherScore: cfg.RevokeTieOnHigherScore}),
		blackjack.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create the game", "error", err)
		os.Exit(1)
	}
	table := application.NewTable(engine, logger)
	pterm.Info.Printfln("New game with %d players", cfg.Players)

	for {
		printState(table.View())
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Choose an action").
			WithOptions(menuOptions(table.View())).
			Show()
		if err != nil {
			logger.Error("failed to read the action", "error", err)
			os.Exit(1)
		}
		quit, err := run(table, choice)
		if quit {
			return
		}
		if err != nil {
			if errors.Is(err, blackjack.ErrInvalidAction) {
				pterm.Warning.Println(err)
				continue
			}
			logger.Error("action failed", "error", err)
			os.Exit(1)
		}
	}
}

// menuOptions lists the actions allowed in the current state.
func menuOptions(v application.View) []string {
	var options []string
	if v.CanDeal {
		options = append(options, serveCards)
	}
	if v.CanHit {
		options = append(options, oneMore)
	}
	if !v.GameOver {
		options = append(options, endTurn)
	}
	if v.CanUndo {
		options = append(options, undo)
	}
	return append(options, newGame, history, quitGame)
}

// run performs a menu choice and reports whether the player asked to quit.
func run(table *application.Table, choice string) (bool, error) {
	switch choice {
	case serveCards:
		return false, table.Deal()
	case oneMore:
		return false, table.Hit()
	case endTurn:
		return false, table.EndTurn()
	case undo:
		return false, table.Undo()
	case newGame:
		return false, table.NewGame()
	case history:
		entries, err := table.History()
		if err != nil {
			return false, err
		}
		pterm.Println(historyPanel(entries))
		return false, nil
	case quitGame:
		return true, nil
	}
	return false, errors.New("unknown menu entry " + choice)
}
