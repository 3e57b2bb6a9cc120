// Package debugui provides Dear ImGui inspector windows for a running
// simulation, drawn on top of the Ebiten view.
package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/sim"
)

// Inspector renders the "Bodies" and "Run" windows. It is an Item.
type Inspector struct {
	driver  *sim.Driver
	monitor *sim.OrbitMonitor

	stepTimes *history
}

// NewInspector creates an inspector for driver. monitor may be nil.
// historyFrames is the length of the step time plot.
func NewInspector(driver *sim.Driver, monitor *sim.OrbitMonitor, historyFrames int) *Inspector {
	return &Inspector{
		driver:    driver,
		monitor:   monitor,
		stepTimes: newHistory(historyFrames),
	}
}

// Render builds both windows. Call it between BeginFrame and EndFrame.
func (in *Inspector) Render() {
	in.renderBodies()
	in.renderRun()
}

func (in *Inspector) renderBodies() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 30), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 180), imgui.CondOnce)

	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	system := in.driver.System()
	sun, ok := system.Sun()
	if ok {
		imgui.Text(fmt.Sprintf("%s  mass %.3g at (%.3f, %.3f)", sun.Name, sun.Mass, sun.Position.X, sun.Position.Y))
	} else {
		imgui.Text("no sun")
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("BodyTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Id")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Velocity")
		imgui.TableSetupColumn("Radius")
		imgui.TableHeadersRow()

		for id, planet := range system.Planets() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(id.String())
			imgui.TableNextColumn()
			imgui.Text(planet.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("(%.3f, %.3f)", planet.Position.X, planet.Position.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("(%.3f, %.3f)", planet.Velocity.X, planet.Velocity.Y))
			imgui.TableNextColumn()
			if ok {
				imgui.Text(fmt.Sprintf("%.4f", planet.Position.Sub(sun.Position).Len()))
			} else {
				imgui.Text("-")
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (in *Inspector) renderRun() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 220), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)

	if !imgui.BeginV("Run", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	done, total := in.driver.Steps()
	imgui.Text(fmt.Sprintf("State: %s", in.driver.State()))
	imgui.Text(fmt.Sprintf("Elapsed: %.3f / %.3f", in.driver.Elapsed(), in.driver.Config().Duration))
	imgui.Text(fmt.Sprintf("Steps: %d / %d (dt %.4g)", done, total, in.driver.Config().StepSize))

	stats := in.driver.Stats()
	var stepTime float32
	for _, stage := range stats.Stages {
		stepTime += float32(stage.LastDuration.Seconds() * 1e6)
	}
	in.stepTimes.push(stepTime)

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Step time: %.1f us", in.stepTimes.last()))
	values := in.stepTimes.values()
	imgui.PlotLinesFloatPtr("##steptime", &values[0], int32(len(values)))

	if imgui.TreeNodeStr("Stages") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("StageTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableHeadersRow()

			for _, stage := range stats.Stages {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(stage.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stage.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(stage.AvgDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if in.monitor != nil && imgui.TreeNodeStr("Orbits") {
		for _, rec := range in.monitor.Records() {
			imgui.BulletText(fmt.Sprintf("%s: r in [%.4f, %.4f], energy drift %+.3f%%",
				rec.Name, rec.MinRadius, rec.MaxRadius, 100*rec.EnergyDrift()))
		}
		imgui.TreePop()
	}

	imgui.End()
}
