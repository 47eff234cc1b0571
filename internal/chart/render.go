package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	panelWidth  = 500
	panelHeight = 400
	titleHeight = 40

	// Width and Height of the composed image.
	Width  = 2 * panelWidth
	Height = titleHeight + 2*panelHeight
)

var (
	incomeColor  = drawing.ColorFromHex("2ca02c")
	expenseColor = drawing.ColorFromHex("d62728")
)

// Render draws the layout as a PNG: expense pie top-left, income pie
// top-right, totals bottom-left, bottom-right left blank.
func Render(l Layout) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	drawCentered(canvas, l.Title, Width/2, titleHeight/2+5)

	expense, err := renderPie(l.Expense)
	if err != nil {
		return nil, fmt.Errorf("chart: expense panel: %w", err)
	}
	income, err := renderPie(l.Income)
	if err != nil {
		return nil, fmt.Errorf("chart: income panel: %w", err)
	}
	totals, err := renderBars(l.Totals)
	if err != nil {
		return nil, fmt.Errorf("chart: totals panel: %w", err)
	}

	place(canvas, expense, image.Pt(0, titleHeight))
	place(canvas, income, image.Pt(panelWidth, titleHeight))
	place(canvas, totals, image.Pt(0, titleHeight+panelHeight))

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("chart: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPie(p PiePanel) (image.Image, error) {
	if p.Placeholder != "" {
		return placeholder(p.Placeholder), nil
	}

	values := make([]gochart.Value, len(p.Slices))
	for i, s := range p.Slices {
		values[i] = gochart.Value{Label: s.Caption(), Value: s.Value}
	}

	pie := gochart.PieChart{
		Title:  p.Title,
		Width:  panelWidth,
		Height: panelHeight,
		Values: values,
	}
	return renderPNG(pie.Render)
}

func renderBars(b BarPanel) (image.Image, error) {
	if b.Placeholder != "" {
		return placeholder(b.Placeholder), nil
	}
	if !drawable(b.Income) || !drawable(b.Expense) {
		return nil, fmt.Errorf("totals out of drawable range: %g, %g", b.Income, b.Expense)
	}

	lo := math.Min(0, math.Min(b.Income, b.Expense))
	hi := math.Max(b.Income, b.Expense)
	if hi <= lo {
		hi = lo + 1
	}

	bars := gochart.BarChart{
		Title:    b.Title,
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 80,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: lo, Max: hi * 1.1},
		},
		Bars: []gochart.Value{
			{Label: "Receitas", Value: b.Income, Style: gochart.Style{FillColor: incomeColor, StrokeColor: incomeColor}},
			{Label: "Despesas", Value: b.Expense, Style: gochart.Style{FillColor: expenseColor, StrokeColor: expenseColor}},
		},
	}
	return renderPNG(bars.Render)
}

func renderPNG(render func(gochart.RendererProvider, io.Writer) error) (image.Image, error) {
	var buf bytes.Buffer
	if err := render(gochart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func placeholder(text string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, panelWidth, panelHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawCentered(img, text, panelWidth/2, panelHeight/2)
	return img
}

func place(dst draw.Image, src image.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
}

func drawCentered(dst draw.Image, text string, cx, baseline int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(cx-width/2, baseline),
	}
	d.DrawString(text)
}
