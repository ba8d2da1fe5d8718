package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"umlts/internal/source"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса

// builtinSeeds cover every statement form plus the usual broken shapes.
var builtinSeeds = []string{
	"",
	"class A",
	"abstract class Shape {\n  # name: string\n  + area(): number\n  + {abstract} draw(ctx: Canvas): void\n}",
	"interface Drawable\nclass Circle >I Drawable\nclass Square >> Shape, Drawable",
	"enum Color { RED, GREEN, BLUE }",
	"datatype Money",
	"package shop {\n  class Order\n  Order >* [1..*] LineItem : items\n}",
	"package a.b.c { class X }",
	"class Enrollment <> (Student[*], Course[1..*]) {\n  grade: string\n}",
	"Customer [1] >- [0..*] Order\nA <> B\nA -- B\nA ..> B\nA >+ B",
	"class Payment {\n  card: Card | Cash\n}",
	"xor payment {\n  Order >- Card\n  Order >- Cash\n}",
	"note todo \"remember\" for Order, Customer",
	"/** documented */\nclass Doc\n// trailing",
	"config {\n  language: typescript\n}\nclass T {\n  tags?: string[]\n  map: Map<string, Item>\n}",
	"@language: java\nclass J {\n  @Deprecated\n  items: List<Item>\n  public static final int MAX = 3\n}",
	"class A >> B\nclass B >> A",
	"class {",
	"}}}}",
	"class A { + }",
	"A >> ",
	"\"unterminated",
	"/* open",
	"class 日本 { 名前: string }",
	"class A\r\nclass B\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.umlts under ../../testdata when present.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !source.HasSourceExt(path) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
