package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Item is anything that draws ImGui widgets once per frame.
type Item interface {
	Render()
}

// inputState records whether ImGui wanted the mouse or keyboard on the
// last frame.
type inputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay hosts ImGui on top of an Ebiten window. It satisfies
// ebitenview.Overlay and ebitenview.KeyboardCapturer.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	items   []Item
	input   inputState
}

// NewOverlay creates the ImGui backend and its window. The imgui.ini file
// is disabled.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Overlay{backend: backend}
}

// Add appends items drawn in order on every frame.
func (o *Overlay) Add(items ...Item) {
	o.items = append(o.items, items...)
}

// WantsKeyboard reports whether ImGui had keyboard focus on the last
// frame. The window skips its hotkeys while it does.
func (o *Overlay) WantsKeyboard() bool {
	return o.input.WantCaptureKeyboard
}

func (o *Overlay) Update() error {
	o.backend.BeginFrame()

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}

	o.backend.EndFrame()
	return nil
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
