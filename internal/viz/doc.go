// Package viz renders automaton frames and run statistics in the terminal.
//
//   - [RenderGrid]: a frame as colored half-block characters
//   - [CoverageCanvas]: non-zero cells as a braille dot map
//   - [PlotSeries]: sample series as an ASCII line chart
//   - [ProgressModel]: a Bubble Tea view that follows a render
//
// # Progress
//
// The render loop runs in its own goroutine and reports through
// [ProgressSink]; the view never touches simulation state:
//
//	p := tea.NewProgram(viz.NewProgressModel("torus", frames+1, cancel))
//	go func() {
//	    res, err := s.Render(ctx, viz.NewProgressSink(sink, p.Send), frames)
//	    p.Send(viz.DoneMsg{Result: res, Err: err})
//	}()
//	_, err := p.Run()
package viz
