package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/matcher/internal/artwork"
	"github.com/arcanaland/matcher/internal/board"
	"github.com/arcanaland/matcher/internal/config"
	"github.com/arcanaland/matcher/internal/deck"
	"github.com/arcanaland/matcher/internal/game"
)

var playFlags gameFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Play fetches a batch of random images, deals each image twice face down and
starts a game. Type a card number and press enter to flip it. Flipping the same
card again puts it back. When two cards are flipped they stay visible for a moment;
a matching pair is removed from the board. Type q to quit.

Examples:
  matcher play
  matcher play --count 8
  matcher play --gallery ./saved-gallery.json --delay 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, delay, err := playFlags.settings(cmd)
		if err != nil {
			return err
		}

		log := newLogger()
		sessionID := uuid.NewString()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		images, err := playFlags.source(cfg, log).FetchRandomImages(ctx, cfg.ImageCount)
		if err != nil {
			// Not fatal: the board shows that there is nothing to play
			log.Warn(fmt.Sprintf("fetching images: %v", err))
			images = nil
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		cards := deck.FromBatch(images, cfg.ImageCount, deck.NewIDSource("card"), rng)
		log.Event("DEAL", sessionID, fmt.Sprintf("%d cards from %d images", len(cards), len(images)))

		renderer := artwork.NewRenderer(config.GetCacheDir(), cfg.ArtWidth, log)
		urls := make([]string, 0, len(cards))
		for _, c := range cards {
			urls = append(urls, c.URL)
		}
		faces := renderer.Prefetch(ctx, urls)

		out := cmd.OutOrStdout()
		layout := board.Layout{
			CardWidth:  renderer.Width,
			CardHeight: renderer.Height,
			Width:      terminalWidth(),
		}
		interactive := term.IsTerminal(int(os.Stdout.Fd()))

		session := game.NewSession(sessionID, cards, log)
		session.Delay = delay
		session.OnChange = func(snap game.Snapshot) {
			if interactive {
				fmt.Fprint(out, "\x1b[H\x1b[2J")
			}
			fmt.Fprint(out, board.Render(snap, faces, layout))
			if !snap.Done() && snap.Phase != game.Resolving {
				fmt.Fprint(out, "> ")
			}
		}

		picks := readPicks(ctx, cmd.InOrStdin())

		_, err = session.Run(ctx, picks)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out)
			return nil
		}
		return err
	},
}

func init() {
	RootCmd.AddCommand(playCmd)
	playFlags.register(playCmd, true)
}

// readPicks turns input lines into board positions. The channel closes on
// q, end of input or when ctx is done. A Read already blocked on in is not
// interrupted by ctx; after a win that goroutine ends with the process.
func readPicks(ctx context.Context, in io.Reader) <-chan int {
	picks := make(chan int)

	go func() {
		defer close(picks)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "q" || line == "quit" {
				return
			}

			pos, err := strconv.Atoi(line)
			if err != nil {
				continue
			}

			select {
			case picks <- pos:
			case <-ctx.Done():
				return
			}
		}
	}()

	return picks
}

// terminalWidth returns the width of stdout, or 80 when it isn't a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
