package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pseudo-blackjack/application"
	"github.com/luca-patrignani/pseudo-blackjack/domain/blackjack"
	"github.com/luca-patrignani/pseudo-blackjack/ledger"
)

func printState(v application.View) {
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{{Data: scoreBoard(v)}, {Data: cardsPanel(v.Cards)}},
		{{Data: statusLine(v)}},
	}).Render()
}

func scoreBoard(v application.View) string {
	data := pterm.TableData{{"Player", "Score"}}
	for i, score := range v.Scores {
		name := "Player " + strconv.Itoa(i+1)
		if i == v.CurrentPlayer && !v.GameOver {
			name = pterm.LightCyan(name)
		}
		points := strconv.Itoa(score)
		if blackjack.Busted(score) {
			points = pterm.LightRed(points)
		}
		data = append(data, []string{name, points})
	}
	board, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return board
}

func cardsPanel(cards [2]blackjack.Card) string {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	hand := pterm.BgGreen.Sprintf("%s - %s", cards[0].String(), cards[1].String())
	return pbox.WithTitle(pterm.LightYellow("|CARDS|")).WithTitleTopCenter().Sprint(hand)
}

func statusLine(v application.View) string {
	if v.GameOver {
		return pterm.LightGreen(v.Status)
	}
	return v.Status
}

func historyPanel(entries []ledger.Entry) string {
	if len(entries) == 0 {
		return "No actions yet"
	}
	data := pterm.TableData{{"#", "Player", "Action", "Cards", "Scores", "Status"}}
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Index),
			strconv.Itoa(e.Player + 1),
			string(e.Action),
			e.Cards[0].Label() + " " + e.Cards[1].Label(),
			fmt.Sprint(e.Scores),
			e.Status,
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return out
}
