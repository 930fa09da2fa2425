package conductor

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/conductor-go/pkg/actions"
	"github.com/theapemachine/conductor-go/pkg/catalog"
	"github.com/theapemachine/conductor-go/pkg/state"
)

func newTestExecutor() (*Executor, *state.Scratchpad) {
	registry := catalog.NewRegistry()
	scratchpad := state.NewScratchpad()
	todo := state.NewTodo()
	handler := actions.NewHandler(registry, scratchpad, todo)

	return NewExecutor(actions.NewParser(), handler), scratchpad
}

func TestExecuteNoOp(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directive with no action blocks", t, func() {
		executor, _ := newTestExecutor()

		result := executor.Execute(ctx, "just narrating my thoughts")

		So(result.NoOp, ShouldBeTrue)
		So(result.Actions, ShouldBeEmpty)
		So(result.HasError, ShouldBeFalse)
	})

	Convey("Given a directive with a malformed block", t, func() {
		executor, _ := newTestExecutor()

		result := executor.Execute(ctx, `<action type="update_scratchpad"></action>`)

		Convey("The attempt counts even though nothing executed", func() {
			So(result.NoOp, ShouldBeFalse)
			So(result.HasError, ShouldBeTrue)
			So(len(result.Responses), ShouldEqual, 1)
			So(result.Responses[0], ShouldStartWith, "[parse error]")
		})
	})
}

func TestExecuteSequential(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directive with dependent actions", t, func() {
		executor, scratchpad := newTestExecutor()

		directive := `<action type="update_scratchpad"><content>step one</content></action>
<action type="update_scratchpad"><content>step two</content></action>`

		result := executor.Execute(ctx, directive)

		Convey("They execute in order", func() {
			So(len(result.Actions), ShouldEqual, 2)
			So(result.HasError, ShouldBeFalse)
			So(scratchpad.Content(), ShouldEqual, "step one\nstep two")
		})
	})
}

func TestExecuteFinishStopsTheTurn(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directive with actions after a finish_stage block", t, func() {
		executor, scratchpad := newTestExecutor()

		directive := `<action type="finish_stage"><message>done</message><summary>all wrapped up</summary></action>
<action type="update_scratchpad"><content>should never run</content></action>`

		result := executor.Execute(ctx, directive)

		Convey("Execution stops at the finish", func() {
			So(result.Done, ShouldBeTrue)
			So(result.FinishMessage, ShouldEqual, "done")
			So(result.FinishSummary, ShouldEqual, "all wrapped up")
			So(len(result.Actions), ShouldEqual, 1)
			So(scratchpad.Empty(), ShouldBeTrue)
		})
	})
}
