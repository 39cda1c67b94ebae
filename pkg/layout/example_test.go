package layout_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/lamafmt/pkg/layout"
)

func Example() {
	cfg := layout.Config{Width: 12}

	call := layout.Beside(cfg.Text("print("), cfg.Text("x, y)"))
	stacked := layout.Above(cfg.Text("print("), layout.ShiftRight(2, cfg.Text("x, y)")))

	out, err := layout.Render(layout.Choose(call, stacked))
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// print(x, y)
}

func Example_narrow() {
	cfg := layout.Config{Width: 8}

	call := layout.Beside(cfg.Text("print("), cfg.Text("x, y)"))
	stacked := layout.Above(cfg.Text("print("), layout.ShiftRight(2, cfg.Text("x, y)")))

	out, err := layout.Render(layout.Choose(call, stacked))
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// print(
	//   x, y)
}

func ExampleFilterByHeight() {
	cfg := layout.DefaultConfig()
	twoLines := cfg.Text("a\nb")

	_, err := layout.Render(layout.FilterByHeight(twoLines, 1))
	fmt.Println(errors.Is(err, layout.ErrEmptyCandidateSet))
	// Output:
	// true
}

func ExampleFactorize() {
	candidates := []*layout.Format{
		layout.Line("abcdef"),
		layout.FromString("abc\nd"),
		layout.Line("abc"),
	}
	for _, f := range layout.Factorize(candidates) {
		fmt.Println(f.Measures)
	}
	// Output:
	// h=2 first=3 middle=3 last=1
	// h=1 first=3 middle=3 last=3
}
