// Package ui builds the ebitenui HUD, pause and game-over panels.
package ui

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Actions are the callbacks behind the panel buttons.
type Actions struct {
	Resume  func()
	Quit    func()
	Restart func()
}

// HUDData is what the HUD shows for one frame.
type HUDData struct {
	Health     int
	MaxHealth  int
	Coins      int
	Scene      string
	Boss       string
	BossHealth int
	BossMax    int
}

// Panels holds one ebitenui tree per panel.
type Panels struct {
	HUD      *ebitenui.UI
	Pause    *ebitenui.UI
	GameOver *ebitenui.UI

	health *widget.Text
	coins  *widget.Text
	scene  *widget.Text
	boss   *widget.Text
}

var (
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelTint = color.NRGBA{A: 200}
	buttonBg  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonHov = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
)

func NewPanels(width, height int, actions Actions) *Panels {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	p := &Panels{}
	p.HUD = p.newHUD(&face)
	p.Pause = newMenu(&face, width, height, "Paused",
		button(&face, "Resume", actions.Resume),
		button(&face, "Quit", actions.Quit),
	)
	p.GameOver = newMenu(&face, width, height, "You died",
		button(&face, "Restart (R)", actions.Restart),
		button(&face, "Quit", actions.Quit),
	)
	return p
}

func (p *Panels) newHUD(face *ebtext.Face) *ebitenui.UI {
	text := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", face, white))
	}
	p.health, p.coins, p.scene, p.boss = text(), text(), text(), text()

	box := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 120})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	box.AddChild(p.health)
	box.AddChild(p.coins)
	box.AddChild(p.scene)
	box.AddChild(p.boss)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(box)
	return &ebitenui.UI{Container: root}
}

// SetHUD refreshes the HUD labels.
func (p *Panels) SetHUD(d HUDData) {
	p.health.Label = fmt.Sprintf("HP %d/%d", d.Health, d.MaxHealth)
	p.coins.Label = fmt.Sprintf("Coins %d", d.Coins)
	p.scene.Label = d.Scene
	if d.Boss != "" && d.BossHealth > 0 {
		p.boss.Label = fmt.Sprintf("%s %d/%d", d.Boss, d.BossHealth, d.BossMax)
	} else {
		p.boss.Label = ""
	}
}

func button(face *ebtext.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(buttonBg),
			Hover:   imageui.NewNineSliceColor(buttonHov),
			Pressed: imageui.NewNineSliceColor(buttonHov),
		}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

// newMenu is a centered panel with a title and a column of buttons.
func newMenu(face *ebtext.Face, width, height int, title string, buttons ...*widget.Button) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelTint)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/3, height/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))
	for _, b := range buttons {
		panel.AddChild(b)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
