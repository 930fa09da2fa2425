package actions

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseQueryAgent(t *testing.T) {
	parser := NewParser()

	Convey("Given a directive with a well-formed query_agent block", t, func() {
		directive := `I will ask the researcher.
<action type="query_agent">
  <agent_id>researcher</agent_id>
  <query>Summarize the latest findings</query>
</action>`

		Convey("When the directive is parsed", func() {
			actions, errs, found := parser.Parse(directive)

			Convey("It yields one validated action and no errors", func() {
				So(found, ShouldBeTrue)
				So(errs, ShouldBeEmpty)
				So(len(actions), ShouldEqual, 1)

				query, ok := actions[0].(QueryAgent)
				So(ok, ShouldBeTrue)
				So(query.AgentID, ShouldEqual, "researcher")
				So(query.Query, ShouldEqual, "Summarize the latest findings")
			})
		})
	})
}

func TestParsePartialFailure(t *testing.T) {
	parser := NewParser()

	Convey("Given a directive mixing a valid block and a malformed one", t, func() {
		directive := `<action type="update_scratchpad">
  <content>note to self</content>
</action>
<action type="update_todo">
  <operation>add</operation>
</action>`

		Convey("When the directive is parsed", func() {
			actions, errs, found := parser.Parse(directive)

			Convey("The valid action survives and the failure is recorded", func() {
				So(found, ShouldBeTrue)
				So(len(actions), ShouldEqual, 1)
				So(len(errs), ShouldEqual, 1)
				So(errs[0], ShouldContainSubstring, "update_todo")
			})
		})
	})
}

func TestParseUnknownKind(t *testing.T) {
	parser := NewParser()

	Convey("Given a directive with only an unrecognized action tag", t, func() {
		directive := `<action type="launch_rocket"><target>moon</target></action>`

		Convey("When the directive is parsed", func() {
			actions, errs, found := parser.Parse(directive)

			Convey("The block is ignored without counting as an attempt", func() {
				So(found, ShouldBeFalse)
				So(actions, ShouldBeEmpty)
				So(errs, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a directive with no action blocks at all", t, func() {
		actions, errs, found := parser.Parse("just thinking out loud")

		So(found, ShouldBeFalse)
		So(actions, ShouldBeEmpty)
		So(errs, ShouldBeEmpty)
	})
}

func TestParseOrderPreserved(t *testing.T) {
	parser := NewParser()

	Convey("Given a directive with several blocks", t, func() {
		directive := `<action type="update_scratchpad"><content>first</content></action>
<action type="update_todo"><item>second</item></action>
<action type="finish_stage"><message>done</message><summary>third</summary></action>`

		Convey("When the directive is parsed", func() {
			actions, errs, _ := parser.Parse(directive)

			Convey("The actions appear in textual order", func() {
				So(errs, ShouldBeEmpty)
				So(len(actions), ShouldEqual, 3)
				So(actions[0].Kind(), ShouldEqual, KindUpdateScratchpad)
				So(actions[1].Kind(), ShouldEqual, KindUpdateTodo)
				So(actions[2].Kind(), ShouldEqual, KindFinishStage)
			})
		})
	})
}

func TestParseScratchpadOperations(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name      string
		directive string
		wantOp    ScratchpadOp
		wantErr   bool
	}{
		{
			name:      "default operation is append",
			directive: `<action type="update_scratchpad"><content>x</content></action>`,
			wantOp:    ScratchpadAppend,
		},
		{
			name:      "explicit replace",
			directive: `<action type="update_scratchpad"><operation>replace</operation><content>x</content></action>`,
			wantOp:    ScratchpadReplace,
		},
		{
			name:      "clear needs no content",
			directive: `<action type="update_scratchpad"><operation>clear</operation></action>`,
			wantOp:    ScratchpadClear,
		},
		{
			name:      "append without content fails",
			directive: `<action type="update_scratchpad"></action>`,
			wantErr:   true,
		},
		{
			name:      "unknown operation fails",
			directive: `<action type="update_scratchpad"><operation>rewind</operation><content>x</content></action>`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, errs, _ := parser.Parse(tt.directive)

			if tt.wantErr {
				if len(errs) != 1 || len(actions) != 0 {
					t.Fatalf("expected one parse error, got actions=%d errs=%v", len(actions), errs)
				}
				return
			}

			if len(errs) != 0 || len(actions) != 1 {
				t.Fatalf("expected one action, got actions=%d errs=%v", len(actions), errs)
			}

			pad := actions[0].(UpdateScratchpad)
			if pad.Operation != tt.wantOp {
				t.Errorf("Operation = %s, want %s", pad.Operation, tt.wantOp)
			}
		})
	}
}

func TestParseTodoOperations(t *testing.T) {
	parser := NewParser()

	Convey("Given a complete operation with an index", t, func() {
		directive := `<action type="update_todo">
  <operation>complete</operation>
  <item>write the report</item>
  <index>2</index>
</action>`

		actions, errs, _ := parser.Parse(directive)

		So(errs, ShouldBeEmpty)
		So(len(actions), ShouldEqual, 1)

		todo := actions[0].(UpdateTodo)
		So(todo.Operation, ShouldEqual, TodoComplete)
		So(todo.Index, ShouldNotBeNil)
		So(*todo.Index, ShouldEqual, 2)
	})

	Convey("Given a complete operation without an index", t, func() {
		directive := `<action type="update_todo"><operation>complete</operation><item>x</item></action>`

		actions, errs, _ := parser.Parse(directive)

		So(actions, ShouldBeEmpty)
		So(len(errs), ShouldEqual, 1)
		So(errs[0], ShouldContainSubstring, "index")
	})

	Convey("Given a non-numeric index", t, func() {
		directive := `<action type="update_todo"><operation>remove</operation><item>x</item><index>two</index></action>`

		actions, errs, _ := parser.Parse(directive)

		So(actions, ShouldBeEmpty)
		So(len(errs), ShouldEqual, 1)
	})
}
