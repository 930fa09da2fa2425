package actions

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/conductor-go/pkg/a2a"
	"github.com/theapemachine/conductor-go/pkg/catalog"
	"github.com/theapemachine/conductor-go/pkg/protocol"
	"github.com/theapemachine/conductor-go/pkg/state"
)

// fakeTaskClient returns a scripted task or error for every query.
type fakeTaskClient struct {
	task *a2a.Task
	err  error

	queries []string
}

func (fake *fakeTaskClient) SendAndWait(
	ctx context.Context,
	text string,
	opts protocol.SendOptions,
	pollInterval time.Duration,
	maxWait time.Duration,
) (*a2a.Task, error) {
	fake.queries = append(fake.queries, text)

	if fake.err != nil {
		return nil, fake.err
	}
	return fake.task, nil
}

func newTestHandler(fake *fakeTaskClient) (*Handler, *state.Scratchpad, *state.Todo) {
	registry := catalog.NewRegistry()
	registry.Add(a2a.AgentCard{
		ID:   "researcher",
		Name: "Researcher",
		URL:  "http://agents.local/researcher",
	})

	scratchpad := state.NewScratchpad()
	todo := state.NewTodo()

	handler := NewHandler(registry, scratchpad, todo, WithClientFactory(
		func(endpoint string) TaskClient { return fake },
	))

	return handler, scratchpad, todo
}

func TestHandleQueryAgent(t *testing.T) {
	ctx := context.Background()

	Convey("Given an agent that completes its task", t, func() {
		fake := &fakeTaskClient{
			task: &a2a.Task{
				ID:        "task-1",
				Status:    a2a.TaskStatus{State: a2a.TaskStateCompleted},
				Artifacts: []a2a.Artifact{a2a.NewTextArtifact("a1", "42")},
			},
		}
		handler, _, _ := newTestHandler(fake)

		Convey("When the agent is queried", func() {
			output, failed := handler.Handle(ctx, QueryAgent{
				AgentID: "researcher",
				Query:   "what is the answer",
			})

			Convey("The artifact text is returned", func() {
				So(failed, ShouldBeFalse)
				So(output, ShouldContainSubstring, "42")
				So(fake.queries, ShouldResemble, []string{"what is the answer"})
			})

			Convey("And the query is recorded in the trajectory log", func() {
				trajectories := handler.DrainTrajectories()

				So(trajectories, ShouldContainKey, "researcher")
				So(len(trajectories["researcher"]), ShouldEqual, 1)
				So(trajectories["researcher"][0].TaskID, ShouldEqual, "task-1")
				So(trajectories["researcher"][0].State, ShouldEqual, "completed")
				So(trajectories["researcher"][0].Response, ShouldEqual, "42")

				Convey("Draining clears the log", func() {
					So(handler.DrainTrajectories(), ShouldBeNil)
				})
			})
		})
	})

	Convey("Given an agent whose task fails", t, func() {
		fake := &fakeTaskClient{
			task: &a2a.Task{
				ID:     "task-2",
				Status: a2a.TaskStatus{State: a2a.TaskStateFailed},
				Error:  "tool exploded",
			},
		}
		handler, _, _ := newTestHandler(fake)

		output, failed := handler.Handle(ctx, QueryAgent{AgentID: "researcher", Query: "q"})

		So(failed, ShouldBeTrue)
		So(output, ShouldContainSubstring, "tool exploded")

		Convey("The failure still lands in the trajectory log", func() {
			trajectories := handler.DrainTrajectories()
			So(trajectories["researcher"][0].State, ShouldEqual, "failed")
		})
	})

	Convey("Given an agent that rejects the task with an explanation", t, func() {
		fake := &fakeTaskClient{
			task: &a2a.Task{
				ID:      "task-4",
				Status:  a2a.TaskStatus{State: a2a.TaskStateRejected},
				History: []a2a.Message{*a2a.NewTextMessage("agent", "outside my skill set")},
			},
		}
		handler, _, _ := newTestHandler(fake)

		output, failed := handler.Handle(ctx, QueryAgent{AgentID: "researcher", Query: "q"})

		So(failed, ShouldBeTrue)
		So(output, ShouldContainSubstring, "rejected")
		So(output, ShouldContainSubstring, "outside my skill set")

		Convey("The explanation is recorded in the trajectory log", func() {
			trajectories := handler.DrainTrajectories()
			So(trajectories["researcher"][0].Response, ShouldEqual, "outside my skill set")
		})
	})

	Convey("Given a query that exceeds the deadline", t, func() {
		fake := &fakeTaskClient{
			err: &protocol.TimeoutError{
				TaskID:   "task-3",
				Waited:   time.Minute,
				LastTask: &a2a.Task{ID: "task-3", Status: a2a.TaskStatus{State: a2a.TaskStateWorking}},
			},
		}
		handler, _, _ := newTestHandler(fake)

		output, failed := handler.Handle(ctx, QueryAgent{AgentID: "researcher", Query: "q"})

		So(failed, ShouldBeTrue)
		So(output, ShouldContainSubstring, "no response within the deadline")

		Convey("The last observed task is recorded", func() {
			trajectories := handler.DrainTrajectories()
			So(trajectories["researcher"][0].TaskID, ShouldEqual, "task-3")
			So(trajectories["researcher"][0].State, ShouldEqual, "working")
		})
	})

	Convey("Given an agent id that is not registered", t, func() {
		handler, _, _ := newTestHandler(&fakeTaskClient{})

		output, failed := handler.Handle(ctx, QueryAgent{AgentID: "ghost", Query: "q"})

		So(failed, ShouldBeTrue)
		So(output, ShouldContainSubstring, "not found")
	})
}

func TestHandleUpdateScratchpad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a handler with an empty scratchpad", t, func() {
		handler, scratchpad, _ := newTestHandler(&fakeTaskClient{})

		Convey("Append, replace and clear flow through to the scratchpad", func() {
			_, failed := handler.Handle(ctx, UpdateScratchpad{Content: "A", Operation: ScratchpadAppend})
			So(failed, ShouldBeFalse)

			handler.Handle(ctx, UpdateScratchpad{Content: "B", Operation: ScratchpadAppend})
			So(scratchpad.Content(), ShouldEqual, "A\nB")

			handler.Handle(ctx, UpdateScratchpad{Content: "C", Operation: ScratchpadReplace})
			So(scratchpad.Content(), ShouldEqual, "C")

			handler.Handle(ctx, UpdateScratchpad{Operation: ScratchpadClear})
			So(scratchpad.Empty(), ShouldBeTrue)
		})
	})
}

func TestHandleUpdateTodo(t *testing.T) {
	ctx := context.Background()

	Convey("Given a handler with a todo list", t, func() {
		handler, _, todo := newTestHandler(&fakeTaskClient{})

		handler.Handle(ctx, UpdateTodo{Item: "first", Operation: TodoAdd})
		handler.Handle(ctx, UpdateTodo{Item: "second", Operation: TodoAdd})

		Convey("Completing a valid index succeeds", func() {
			index := 0
			output, failed := handler.Handle(ctx, UpdateTodo{Item: "first", Operation: TodoComplete, Index: &index})

			So(failed, ShouldBeFalse)
			So(output, ShouldContainSubstring, "Completed")
			So(todo.Pending(), ShouldEqual, 1)
		})

		Convey("An out-of-bounds index reports an error and leaves the list intact", func() {
			index := 5
			output, failed := handler.Handle(ctx, UpdateTodo{Item: "first", Operation: TodoComplete, Index: &index})

			So(failed, ShouldBeTrue)
			So(output, ShouldContainSubstring, "out of bounds")
			So(todo.Len(), ShouldEqual, 2)
			So(todo.Pending(), ShouldEqual, 2)
		})
	})
}

func TestHandleFinishStage(t *testing.T) {
	ctx := context.Background()

	Convey("Given a finish_stage action", t, func() {
		handler, _, _ := newTestHandler(&fakeTaskClient{})

		output, failed := handler.Handle(ctx, FinishStage{
			Message: "all objectives met",
			Summary: "queried the researcher, summarized the results",
		})

		So(failed, ShouldBeFalse)
		So(output, ShouldContainSubstring, "all objectives met")

		Convey("The message and summary are retrievable afterwards", func() {
			message, summary := handler.Finish()

			So(message, ShouldEqual, "all objectives met")
			So(summary, ShouldEqual, "queried the researcher, summarized the results")
		})
	})
}
