// Package puzzle — generator.go запускает бинарник солвера.
package puzzle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// CommandGenerator вызывает `<Path> --generate [сложность]` и берёт головоломку из stdout.
type CommandGenerator struct {
	Path    string
	Timeout time.Duration
}

// NewCommandGenerator создаёт генератор.
func NewCommandGenerator(path string, timeout time.Duration) *CommandGenerator {
	return &CommandGenerator{Path: path, Timeout: timeout}
}

// Generate возвращает новую головоломку. Пустой вывод даёт common.ErrEmptyPuzzle:
// подставной головоломки не бывает.
func (g *CommandGenerator) Generate(ctx context.Context, difficulty Difficulty) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	args := []string{"--generate"}
	if difficulty != DifficultyDefault {
		args = append(args, string(difficulty))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("генератор %s: %w: %s", g.Path, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", common.ErrEmptyPuzzle
	}

	log.WithFields(log.Fields{
		"difficulty": difficulty,
		"took":       time.Since(start),
	}).Debug("Головоломка сгенерирована")

	return out, nil
}
