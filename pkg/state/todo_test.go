package state

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTodoAddAndComplete(t *testing.T) {
	Convey("Given an empty todo list", t, func() {
		todo := NewTodo()

		Convey("When items are added", func() {
			So(todo.Add("write the report"), ShouldBeTrue)
			So(todo.Add("review the report"), ShouldBeTrue)

			Convey("They are pending in insertion order", func() {
				items := todo.Items()

				So(len(items), ShouldEqual, 2)
				So(items[0].Text, ShouldEqual, "write the report")
				So(items[0].Completed, ShouldBeFalse)
				So(todo.Pending(), ShouldEqual, 2)
			})

			Convey("When the first item is completed", func() {
				So(todo.Complete(0), ShouldBeTrue)

				Convey("It is marked done but stays in the list", func() {
					items := todo.Items()

					So(items[0].Completed, ShouldBeTrue)
					So(todo.Len(), ShouldEqual, 2)
					So(todo.Pending(), ShouldEqual, 1)
				})
			})
		})

		Convey("When a blank item is added", func() {
			So(todo.Add("  "), ShouldBeFalse)
			So(todo.Len(), ShouldEqual, 0)
		})
	})
}

func TestTodoOutOfBounds(t *testing.T) {
	Convey("Given a todo list with two items", t, func() {
		todo := NewTodo()
		todo.Add("first")
		todo.Add("second")

		Convey("Completing an out-of-bounds index fails", func() {
			So(todo.Complete(5), ShouldBeFalse)
			So(todo.Complete(-1), ShouldBeFalse)

			Convey("And the list is unchanged", func() {
				So(todo.Len(), ShouldEqual, 2)
				So(todo.Pending(), ShouldEqual, 2)
			})
		})

		Convey("Removing an out-of-bounds index fails", func() {
			So(todo.Remove(2), ShouldBeFalse)
			So(todo.Len(), ShouldEqual, 2)
		})

		Convey("Removing a valid index drops the item", func() {
			So(todo.Remove(0), ShouldBeTrue)

			items := todo.Items()
			So(len(items), ShouldEqual, 1)
			So(items[0].Text, ShouldEqual, "second")
		})
	})
}

func TestTodoClearCompleted(t *testing.T) {
	Convey("Given a mixed todo list", t, func() {
		todo := NewTodo()
		todo.Add("done")
		todo.Add("pending")
		todo.Complete(0)

		Convey("ClearCompleted removes only the finished items", func() {
			removed := todo.ClearCompleted()

			So(removed, ShouldEqual, 1)
			So(todo.Len(), ShouldEqual, 1)
			So(todo.Items()[0].Text, ShouldEqual, "pending")
		})
	})
}

func TestTodoStatus(t *testing.T) {
	Convey("Given a todo list with one done and one pending item", t, func() {
		todo := NewTodo()
		todo.Add("done")
		todo.Add("pending")
		todo.Complete(0)

		Convey("The status lists items with zero-based indices and markers", func() {
			status := todo.Status()

			So(status, ShouldContainSubstring, "0. [x] done")
			So(status, ShouldContainSubstring, "1. [ ] pending")
		})

		Convey("The prompt section reports the pending count", func() {
			So(todo.Prompt(), ShouldContainSubstring, "(1/2 pending)")
		})
	})
}
