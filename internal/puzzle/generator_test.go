package puzzle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// writeScript создаёт исполняемый скрипт-генератор во временной папке.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solver")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDifficulty(t *testing.T) {
	Convey("Разбор сложности", t, func() {
		for in, want := range map[string]Difficulty{
			"":         DifficultyDefault,
			"easy":     DifficultyEasy,
			" Medium ": DifficultyMedium,
			"HARD":     DifficultyHard,
			"expert":   DifficultyExpert,
		} {
			d, err := ParseDifficulty(in)
			So(err, ShouldBeNil)
			So(d, ShouldEqual, want)
		}

		_, err := ParseDifficulty("nightmare")
		So(err, ShouldEqual, common.ErrUnknownDifficulty)
	})
}

func TestCommandGenerator(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("нужен /bin/sh")
	}

	Convey("Генератор через внешний бинарник", t, func() {
		ctx := context.Background()

		Convey("Вывод обрезается, аргументы передаются", func() {
			g := NewCommandGenerator(writeScript(t, `echo "  $1:$2  "`), time.Second)
			p, err := g.Generate(ctx, DifficultyHard)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "--generate:hard")

			p, err = g.Generate(ctx, DifficultyDefault)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, "--generate:")
		})

		Convey("Пустой вывод: ошибка, а не пустая головоломка", func() {
			g := NewCommandGenerator(writeScript(t, `echo "   "`), time.Second)
			_, err := g.Generate(ctx, DifficultyDefault)
			So(errors.Is(err, common.ErrEmptyPuzzle), ShouldBeTrue)
		})

		Convey("Ненулевой код выхода: ошибка со stderr", func() {
			g := NewCommandGenerator(writeScript(t, `echo "no seed" >&2; exit 3`), time.Second)
			_, err := g.Generate(ctx, DifficultyDefault)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no seed")
		})

		Convey("Зависший генератор прерывается по таймауту", func() {
			g := NewCommandGenerator(writeScript(t, `exec sleep 5`), 100*time.Millisecond)
			start := time.Now()
			_, err := g.Generate(ctx, DifficultyDefault)
			So(err, ShouldNotBeNil)
			So(time.Since(start), ShouldBeLessThan, 3*time.Second)
		})

		Convey("Отсутствующий бинарник: ошибка", func() {
			g := NewCommandGenerator(filepath.Join(t.TempDir(), "missing"), time.Second)
			_, err := g.Generate(ctx, DifficultyDefault)
			So(err, ShouldNotBeNil)
		})
	})
}

type stubGenerator struct {
	puzzle string
	err    error
	got    Difficulty
}

func (s *stubGenerator) Generate(_ context.Context, d Difficulty) (string, error) {
	s.got = d
	return s.puzzle, s.err
}

func TestHandler_Generate(t *testing.T) {
	Convey("GET /api/puzzle", t, func() {
		gen := &stubGenerator{puzzle: "53..7...."}
		h := NewHandler(gen)

		Convey("Отдаёт головоломку заданной сложности", func() {
			rec := httptest.NewRecorder()
			h.HandleGenerate(rec, httptest.NewRequest(http.MethodGet, "/api/puzzle?difficulty=Easy", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"puzzle":"53..7...."`)
			So(gen.got, ShouldEqual, DifficultyEasy)
		})

		Convey("Неизвестная сложность: 400", func() {
			rec := httptest.NewRecorder()
			h.HandleGenerate(rec, httptest.NewRequest(http.MethodGet, "/api/puzzle?difficulty=insane", nil))
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Сбой генератора: 503", func() {
			gen.err = errors.New("boom")
			rec := httptest.NewRecorder()
			h.HandleGenerate(rec, httptest.NewRequest(http.MethodGet, "/api/puzzle", nil))
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
