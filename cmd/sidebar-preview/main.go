// Command sidebar-preview renders a scoreboard in the terminal the way a
// client would draw it, straight from the in-memory surface.
//
// Keys: + / - add or drop a line, r rotates the lines, t toggles the title
// colour, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/aaronzipp/scoreboards/internal/chat"
	"github.com/aaronzipp/scoreboards/internal/render"
	"github.com/aaronzipp/scoreboards/internal/scoreboard"
	"github.com/aaronzipp/scoreboards/internal/surface"
	"github.com/aaronzipp/scoreboards/internal/surface/memory"
)

var palette = map[chat.Color]int32{
	chat.Black: 0x000000, chat.DarkBlue: 0x0000AA, chat.DarkGreen: 0x00AA00, chat.DarkAqua: 0x00AAAA,
	chat.DarkRed: 0xAA0000, chat.DarkPurple: 0xAA00AA, chat.Gold: 0xFFAA00, chat.Gray: 0xAAAAAA,
	chat.DarkGray: 0x555555, chat.Blue: 0x5555FF, chat.Green: 0x55FF55, chat.Aqua: 0x55FFFF,
	chat.Red: 0xFF5555, chat.LightPurple: 0xFF55FF, chat.Yellow: 0xFFFF55, chat.White: 0xFFFFFF,
}

var attrs = map[chat.Color]tcell.AttrMask{
	chat.Obfuscated:    tcell.AttrReverse,
	chat.Bold:          tcell.AttrBold,
	chat.Strikethrough: tcell.AttrStrikeThrough,
	chat.Underline:     tcell.AttrUnderline,
	chat.Italic:        tcell.AttrItalic,
}

var samples = []string{
	"&7Online: &a12",
	"&7Map: &eSkyfall",
	"",
	"&c&lRed &7- &f3 kills",
	"&9&lBlue &7- &f5 kills",
	"",
	"&7Time left: &f04:59",
	"&6&lGold rush &7active",
	"&bplay.example.net",
}

type preview struct {
	screen tcell.Screen
	viewer *memory.Viewer
	board  *scoreboard.GlobalBoard
	count  int
	shift  int
	gold   bool
	status string
}

func (p *preview) lines() []string {
	out := make([]string, p.count)
	for i := range out {
		out[i] = samples[(i+p.shift)%len(samples)]
	}
	return out
}

func (p *preview) title() string {
	if p.gold {
		return "&6&lPREVIEW"
	}
	return "&e&lPREVIEW"
}

func (p *preview) apply() {
	p.status = ""
	if err := p.board.SetTitle(p.title()); err != nil {
		p.status = err.Error()
		return
	}
	if err := p.board.SetLines(p.lines()...); err != nil {
		p.status = err.Error()
	}
}

// drawLegacy writes §-formatted text at (x, y) and returns the column after it
func (p *preview) drawLegacy(x, y int, s string, base tcell.Style) int {
	style := base
	var mask tcell.AttrMask
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] == chat.ColorChar && i+1 < len(r) {
			if c, ok := chat.ByChar(r[i+1]); ok {
				i++
				switch {
				case c == chat.Reset:
					style, mask = base, 0
				case c.IsFormat():
					mask |= attrs[c]
					style = style.Attributes(mask)
				default:
					style, mask = base.Foreground(tcell.NewHexColor(palette[c])), 0
				}
				continue
			}
		}
		p.screen.SetContent(x, y, r[i], nil, style)
		x += runewidth.RuneWidth(r[i])
	}
	return x
}

func (p *preview) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	base := tcell.StyleDefault.Foreground(tcell.NewHexColor(palette[chat.White]))
	panel := base.Background(tcell.NewHexColor(0x1E1E1E))

	s := p.viewer.Surface().(*memory.Surface)
	sb, ok := s.Sidebar()
	if ok {
		width := render.Width(sb.Title)
		for _, l := range sb.Lines {
			width = max(width, render.Width(l.Text())+1+len(fmt.Sprint(l.Rank)))
		}
		left := max(0, w-width-2)
		top := max(0, (h-len(sb.Lines)-1)/2)

		for y := top; y <= top+len(sb.Lines); y++ {
			for x := left; x < w; x++ {
				p.screen.SetContent(x, y, ' ', nil, panel)
			}
		}
		p.drawLegacy(left+1+(width-render.Width(sb.Title))/2, top, sb.Title, panel)
		for i, l := range sb.Lines {
			p.drawLegacy(left+1, top+1+i, l.Text(), panel)
			score := fmt.Sprint(l.Rank)
			p.drawLegacy(w-1-len(score), top+1+i, chat.Colorize("&c"+score), panel)
		}
	}

	stats := s.Stats()
	info := fmt.Sprintf("%d lines, %d teams, %d score resets  [+/-] lines  [r]otate  [t]itle  [q]uit",
		p.count, stats.TeamsRegistered, stats.ScoreResets)
	p.drawLegacy(0, h-1, info, base.Foreground(tcell.NewHexColor(palette[chat.Gray])))
	if p.status != "" {
		p.drawLegacy(0, h-2, chat.Colorize("&c"+p.status), base)
	}
	p.screen.Show()
}

func main() {
	version := flag.String("version", "1.20", "host version to emulate")
	count := flag.Int("lines", 6, "initial number of lines")
	flag.Parse()

	v, err := surface.ParseVersion(*version)
	if err != nil {
		log.Fatal(err)
	}
	provider, err := surface.NewProvider(v)
	if err != nil {
		log.Fatal(err)
	}

	host := memory.NewHost()
	viewer := host.Join("preview")
	board := scoreboard.NewGlobalBoard(host, provider, scoreboard.DefaultOptions())
	if err := board.AddPlayer(viewer.ID()); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	p := &preview{
		screen: screen,
		viewer: viewer,
		board:  board,
		count:  min(max(*count, 0), 15),
	}
	p.apply()

	for {
		p.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				board.Destroy()
				return
			case ev.Rune() == '+' && p.count < 15:
				p.count++
			case ev.Rune() == '-' && p.count > 0:
				p.count--
			case ev.Rune() == 'r':
				p.shift = (p.shift + 1) % len(samples)
			case ev.Rune() == 't':
				p.gold = !p.gold
			default:
				continue
			}
			p.apply()
		}
	}
}
