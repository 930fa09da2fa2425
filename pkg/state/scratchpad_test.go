package state

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScratchpadAppend(t *testing.T) {
	Convey("Given an empty scratchpad", t, func() {
		pad := NewScratchpad()

		So(pad.Empty(), ShouldBeTrue)

		Convey("When two entries are appended", func() {
			pad.Append("A")
			pad.Append("B")

			Convey("The content joins them with newlines in order", func() {
				So(pad.Content(), ShouldEqual, "A\nB")
				So(pad.Len(), ShouldEqual, 2)
			})
		})

		Convey("When a blank entry is appended", func() {
			pad.Append("   ")

			Convey("It is ignored", func() {
				So(pad.Empty(), ShouldBeTrue)
			})
		})
	})
}

func TestScratchpadReplace(t *testing.T) {
	Convey("Given a scratchpad with existing entries", t, func() {
		pad := NewScratchpad()
		pad.Append("A")
		pad.Append("B")

		Convey("When the content is replaced", func() {
			pad.Replace("C")

			Convey("Only the replacement remains", func() {
				So(pad.Content(), ShouldEqual, "C")
				So(pad.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the scratchpad is cleared", func() {
			pad.Clear()

			Convey("It is empty again", func() {
				So(pad.Content(), ShouldEqual, "")
				So(pad.Empty(), ShouldBeTrue)
			})
		})
	})
}

func TestScratchpadBounded(t *testing.T) {
	Convey("Given a scratchpad filled past its capacity", t, func() {
		pad := NewScratchpad()

		for i := 0; i < 60; i++ {
			pad.Append("entry")
		}

		Convey("The oldest entries are pruned", func() {
			So(pad.Len(), ShouldEqual, 50)
		})
	})
}

func TestScratchpadPrompt(t *testing.T) {
	Convey("Given an empty scratchpad", t, func() {
		pad := NewScratchpad()

		Convey("The prompt section reports it empty", func() {
			So(pad.Prompt(), ShouldContainSubstring, "(empty)")
		})
	})

	Convey("Given a populated scratchpad", t, func() {
		pad := NewScratchpad()
		pad.Append("observed a failure in the build")

		Convey("The prompt section carries the content under a heading", func() {
			prompt := pad.Prompt()

			So(strings.HasPrefix(prompt, "## Scratchpad"), ShouldBeTrue)
			So(prompt, ShouldContainSubstring, "observed a failure in the build")
		})
	})
}
