// Command play runs a two-player game in the terminal.
//
// Commands:
//
//	e2 e4   move the piece on e2 to e4
//	e2      click a square (select a piece, then click a destination)
//	moves   list the legal moves of the side to move
//	fen     print the position as FEN
//	quit    leave
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	fen := flag.String("fen", "", "start from this position instead of the standard one")
	flag.Parse()

	board := model.NewBoardState()
	if *fen != "" {
		var err error
		board, err = model.NewBoardStateFromFEN(*fen)
		if err != nil {
			log.Fatalf("fen: %v", err)
		}
	}

	if err := run(board, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(board *model.BoardState, in io.Reader, out io.Writer) error {
	var sel model.Selection
	fmt.Fprint(out, model.Render(board, &sel))
	prompt(board, out)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 0:
		case fields[0] == "quit":
			return nil
		case fields[0] == "fen":
			fmt.Fprintln(out, board.FEN())
		case fields[0] == "moves":
			fmt.Fprintln(out, formatMoves(board.SafeSquares()))
		case len(fields) == 2:
			move(board, &sel, fields[0], fields[1], out)
		default:
			click(board, &sel, fields[0], out)
		}
		prompt(board, out)
	}
	return scanner.Err()
}

func move(board *model.BoardState, sel *model.Selection, fromArg, toArg string, out io.Writer) {
	from, err := model.ParsePosition(fromArg)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	to, err := model.ParsePosition(toArg)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if err := board.Move(from.X, from.Y, to.X, to.Y); err != nil {
		fmt.Fprintln(out, err)
		return
	}
	sel.Clear()
	fmt.Fprint(out, model.Render(board, sel))
}

func click(board *model.BoardState, sel *model.Selection, arg string, out io.Writer) {
	pos, err := model.ParsePosition(arg)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if _, err := sel.Click(board, pos.X, pos.Y); err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprint(out, model.Render(board, sel))
}

func prompt(board *model.BoardState, out io.Writer) {
	check := ""
	if board.CheckState().InCheck {
		check = " (check)"
	}
	fmt.Fprintf(out, "%s to move%s> ", board.PlayerColor(), check)
}

func formatMoves(safeSquares model.SafeSquares) string {
	var lines []string
	for from, dests := range safeSquares {
		parts := make([]string, len(dests))
		for i, to := range dests {
			parts[i] = to.String()
		}
		lines = append(lines, fmt.Sprintf("%s: %s", from, strings.Join(parts, " ")))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
