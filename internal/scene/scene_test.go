package scene

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/scenekit/internal/geom"
	"github.com/inamate/scenekit/internal/shape"
	"github.com/inamate/scenekit/internal/vec"
)

func mustID(t *testing.T) func(int, error) int {
	return func(id int, err error) int {
		t.Helper()
		require.NoError(t, err)
		return id
	}
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s := New()
	must := mustID(t)

	a := must(s.Rectangle(0, 0, 10, 10))
	b := must(s.Circle(50, 50, 5))
	c := must(s.Polygon([]vec.Vector2{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}))

	assert.Equal(t, []int{1, 2, 3}, []int{a, b, c})
	assert.Equal(t, []int{a, b, c}, s.FindAll())
	assert.Equal(t, 3, s.Len())

	s.Remove(c)
	d := must(s.Ellipse(0, 0, 3, 3))
	assert.Equal(t, 4, d, "ids are never reused")
}

func TestInsertRejectsDuplicates(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(WithLogger(logger))

	first, err := s.Rectangle(0, 0, 10, 10)
	require.NoError(t, err)

	_, err = s.Rectangle(10, 10, 0, 0)
	require.ErrorIs(t, err, ErrDuplicateShape)
	assert.Contains(t, logs.String(), "rejected duplicate shape")

	_, err = s.Ellipse(0, 0, 10, 10)
	assert.NoError(t, err, "different kind")

	s.Hide(first)
	_, err = s.Rectangle(0, 0, 10, 10)
	assert.ErrorIs(t, err, ErrDuplicateShape, "hidden shapes still count")

	s.Remove(first)
	_, err = s.Rectangle(0, 0, 10, 10)
	assert.NoError(t, err, "removed shapes do not")

	_, err = s.Text(5, 5, "hello", 0)
	require.NoError(t, err)
	_, err = s.Text(5, 5, "hello", 0)
	assert.NoError(t, err, "text is exempt")
}

func TestInsertRejectsEmptyVertexLists(t *testing.T) {
	s := New()

	_, err := s.Polygon(nil)
	assert.ErrorIs(t, err, shape.ErrGeometryArity)
	_, err = s.Polyline([]vec.Vector2{})
	assert.ErrorIs(t, err, shape.ErrGeometryArity)
	_, err = s.Insert(shape.NewPolygon(nil))
	assert.ErrorIs(t, err, shape.ErrGeometryArity)

	assert.Equal(t, 0, s.Len())
	_, ok := s.ClosestTo(5, 5)
	assert.False(t, ok)

	id, err := s.Polyline([]vec.Vector2{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, id, "rejected inserts do not consume ids")
}

func TestInsertCopiesShape(t *testing.T) {
	s := New()
	sh := shape.NewPolygon([]vec.Vector2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}})
	id, err := s.Insert(sh)
	require.NoError(t, err)

	sh.Translate(100, 100)
	assert.Equal(t, vec.New(0, 0), s.Coords(id)[0])

	got, ok := s.Get(id)
	require.True(t, ok)
	got.Translate(5, 5)
	assert.Equal(t, vec.New(0, 0), s.Coords(id)[0], "reads are copies")
	assert.Equal(t, id, got.ID)
}

func TestMaxShapes(t *testing.T) {
	s := New(WithMaxShapes(2))
	must := mustID(t)
	must(s.Rectangle(0, 0, 1, 1))
	must(s.Rectangle(0, 0, 2, 2))
	_, err := s.Rectangle(0, 0, 3, 3)
	assert.ErrorIs(t, err, ErrSceneFull)
}

func TestRaiseLower(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 1, 1))
	b := must(s.Rectangle(0, 0, 2, 2))
	c := must(s.Rectangle(0, 0, 3, 3))

	assert.True(t, s.Raise(a, b))
	assert.Equal(t, []int{b, a, c}, s.FindAll())

	assert.False(t, s.Raise(a, b), "already above")
	assert.False(t, s.Raise(a, a))
	assert.False(t, s.Raise(a, 99))

	assert.True(t, s.Raise(b, a))
	assert.Equal(t, []int{a, b, c}, s.FindAll(), "raising back restores the order")

	assert.True(t, s.Raise(a, c))
	assert.Equal(t, []int{b, c, a}, s.FindAll())

	assert.True(t, s.Lower(a, b), "b is raised above a")
	assert.Equal(t, []int{c, a, b}, s.FindAll())

	pos, ok := s.PaintIndex(b)
	require.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestRaiseTag(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 1, 1))
	b := must(s.Rectangle(0, 0, 2, 2))
	c := must(s.Circle(0, 0, 3))

	s.AddTag(a, "back")
	s.AddTag(b, "back")

	assert.True(t, s.RaiseTag("back", c))
	assert.Equal(t, []int{c, b, a}, s.FindAll())

	assert.False(t, s.RaiseTag("missing", c))

	assert.False(t, s.LowerTag("circle", a), "already below")

	assert.True(t, s.LowerTag("back", c))
	assert.Equal(t, []int{b, a, c}, s.FindAll())
}

func TestFinders(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 10, 10))
	b := must(s.Circle(100, 100, 20))
	c := must(s.Polyline([]vec.Vector2{{X: 0, Y: 50}, {X: 200, Y: 50}}))
	s.Raise(a, c)

	assert.Equal(t, []int{b, c, a}, s.FindAll())
	assert.Equal(t, []int{b}, s.FindWithTag("circle"))
	assert.Equal(t, []int{b, c, a}, s.FindWithTag("all"))
	assert.Empty(t, s.FindWithTag("nothing"))

	assert.Equal(t, []int{b, c}, s.FindAbove(a), "by id, in paint order")
	assert.Equal(t, []int{a}, s.FindBelow(b))

	assert.Equal(t, []int{a}, s.FindEnclosed(geom.NewBox(-1, -1, 11, 11)))
	assert.Equal(t, []int{c, a}, s.FindOverlapping(geom.NewBox(5, 5, 20, 60)))

	assert.Equal(t, []int{b}, s.FindAt(100, 110))
}

func TestClosestTo(t *testing.T) {
	s := New()
	_, ok := s.ClosestTo(0, 0)
	assert.False(t, ok)
	assert.Nil(t, s.FindClosest(0, 0))

	must := mustID(t)
	a := must(s.Rectangle(0, 0, 10, 10))
	b := must(s.Rectangle(20, 0, 30, 10))
	// same corner distance as a from (15, 0)
	must(s.Rectangle(20, -10, 25, 0))

	id, ok := s.ClosestTo(15, 0)
	require.True(t, ok)
	assert.Equal(t, a, id, "tie goes to the lowest in paint order")

	id, _ = s.ClosestTo(29, 11)
	assert.Equal(t, b, id)
}

func TestHitTest(t *testing.T) {
	s := New()
	must := mustID(t)
	back := must(s.Rectangle(0, 0, 100, 100))
	front := must(s.Circle(50, 50, 20))

	id, ok := s.HitTest(50, 50)
	require.True(t, ok)
	assert.Equal(t, front, id)

	id, _ = s.HitTest(5, 5)
	assert.Equal(t, back, id)

	s.Hide(front)
	id, _ = s.HitTest(50, 50)
	assert.Equal(t, back, id, "hidden shapes are not hit")

	_, ok = s.HitTest(500, 500)
	assert.False(t, ok)
}

func TestBoundingBoxes(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 10, 10))
	b := must(s.Circle(100, 100, 20))
	s.AddTag(a, "group")
	s.AddTag(b, "group")

	box, ok := s.BBox(b)
	require.True(t, ok)
	assert.Equal(t, geom.NewBox(80, 80, 120, 120), box)

	assert.Equal(t, geom.NewBox(0, 0, 120, 120), s.BoundingBoxOf([]int{a, b, 42}))
	assert.Equal(t, geom.NewBox(0, 0, 120, 120), s.BoundingBoxOfTags([]string{"group"}))
	assert.Equal(t, geom.NewBox(80, 80, 120, 120), s.BoundingBoxOfTags([]string{"nope", "circle"}))

	empty := s.BoundingBoxOfTags([]string{"nope"})
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, geom.Empty(), s.BoundingBoxOf(nil))

	_, ok = s.BBox(42)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 1, 1))
	b := must(s.Rectangle(0, 0, 2, 2))
	c := must(s.Circle(0, 0, 3))
	s.AddTag(a, "doomed")
	s.AddTag(c, "doomed")

	assert.True(t, s.RemoveTag("doomed"))
	assert.Equal(t, []int{b}, s.FindAll())
	assert.False(t, s.RemoveTag("doomed"))

	assert.True(t, s.Remove(b))
	assert.False(t, s.Remove(b))
	assert.Zero(t, s.Len())

	_, ok := s.Get(b)
	assert.False(t, ok)
}

func TestMoveAndCoords(t *testing.T) {
	s := New()
	must := mustID(t)
	r := must(s.Rectangle(0, 0, 10, 10))
	c := must(s.Circle(0, 0, 5))

	assert.True(t, s.Move(r, 5, 5))
	assert.Equal(t, vec.New(5, 5), s.Coords(r)[0])

	assert.True(t, s.MoveTag("all", 1, 0))
	assert.Equal(t, vec.New(6, 5), s.Coords(r)[0])
	sh, _ := s.Get(c)
	assert.Equal(t, vec.New(1, 0), sh.Center)

	assert.False(t, s.Move(99, 1, 1))
	assert.Nil(t, s.Coords(99))

	assert.True(t, s.SetCoords(c, []vec.Vector2{{X: 40, Y: 40}, {X: 8, Y: 0}}))
	box, _ := s.BBox(c)
	assert.Equal(t, geom.NewBox(32, 32, 48, 48), box)

	assert.False(t, s.SetCoords(r, []vec.Vector2{{X: 1, Y: 1}}), "wrong arity")
	assert.False(t, s.SetCoords(99, nil))

	assert.True(t, s.ContainsPoint(c, 40, 40))
	assert.False(t, s.ContainsPoint(99, 40, 40))
	assert.True(t, s.OverlapsRegion(c, geom.NewBox(0, 0, 35, 35)))
}

func TestVisibility(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 1, 1))
	b := must(s.Circle(0, 0, 3))

	assert.True(t, s.IsVisible(a))
	assert.True(t, s.HideTag("all"))
	assert.False(t, s.IsVisible(a))
	assert.False(t, s.IsVisible(b))
	assert.Equal(t, 2, s.Len(), "hidden shapes stay in the scene")

	assert.True(t, s.Show(a))
	assert.True(t, s.IsVisible(a))
	assert.True(t, s.ShowTag("circle"))
	assert.True(t, s.IsVisible(b))

	assert.False(t, s.Hide(99))
	assert.False(t, s.IsVisible(99))
}

func TestTagging(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 10, 10))
	b := must(s.Circle(100, 100, 10))
	c := must(s.Rectangle(200, 200, 210, 210))

	assert.True(t, s.TagAbove("above", a))
	assert.Equal(t, []int{b, c}, s.FindWithTag("above"))

	assert.True(t, s.TagBelow("below", c))
	assert.Equal(t, []int{a, b}, s.FindWithTag("below"))
	assert.False(t, s.TagBelow("none", a))

	assert.True(t, s.TagAll("every"))
	assert.Len(t, s.FindWithTag("every"), 3)

	assert.True(t, s.TagEnclosed("inner", geom.NewBox(-1, -1, 120, 120)))
	assert.Equal(t, []int{a, b}, s.FindWithTag("inner"))

	assert.True(t, s.TagOverlapping("touched", geom.NewBox(205, 205, 300, 300)))
	assert.Equal(t, []int{c}, s.FindWithTag("touched"))

	assert.True(t, s.TagClosest("near", 95, 95))
	assert.Equal(t, []int{b}, s.FindWithTag("near"))

	assert.True(t, s.TagWithTag("circle", "round"))
	assert.Equal(t, []int{b}, s.FindWithTag("round"))
	assert.False(t, s.TagWithTag("missing", "x"))

	assert.True(t, s.DeleteTag(b, "round"))
	assert.True(t, s.DeleteTag(b, "all"), "shape exists")
	assert.Contains(t, s.Tags(b), "all")
	assert.NotContains(t, s.Tags(b), "round")
	assert.False(t, s.DeleteTag(99, "x"))
	assert.Nil(t, s.Tags(99))
}

func TestStyle(t *testing.T) {
	s := New()
	must := mustID(t)
	a := must(s.Rectangle(0, 0, 10, 10))
	txt := must(s.Text(0, 0, "hi", 0))

	assert.True(t, s.SetFill(a, "#ff0000"))
	assert.Equal(t, "#ff0000", s.Fill(a))
	assert.True(t, s.SetPen(a, ""))
	assert.Equal(t, "#000000", s.Pen(a), "empty pen color is ignored")
	assert.True(t, s.SetPenTag("all", "#00ff00"))
	assert.Equal(t, "#00ff00", s.Pen(txt))

	assert.True(t, s.SetPenSize(a, 3))
	assert.Equal(t, 3, s.PenSize(a))
	assert.True(t, s.SetBorderTag("rectangle", shape.Dash))
	assert.Equal(t, shape.Dash, s.Border(a))

	assert.True(t, s.SetFont(txt, "Arial", 18, "bold underline"))
	assert.Equal(t, shape.Font{Family: "Arial", Size: 18, Bold: true, Underline: true}, s.Font(txt))
	assert.True(t, s.SetTextTag("text", "bye"))
	assert.Equal(t, "bye", s.TextOf(txt))

	kind, ok := s.Kind(txt)
	require.True(t, ok)
	assert.Equal(t, shape.Text, kind)

	assert.False(t, s.SetFill(99, "#fff"))
	assert.Empty(t, s.Fill(99))
	_, ok = s.Kind(99)
	assert.False(t, ok)
}

func TestDrawList(t *testing.T) {
	s := New()
	must := mustID(t)
	r := must(s.Rectangle(0, 0, 10, 20))
	hidden := must(s.Circle(5, 5, 5))
	pie := must(s.Sector(0, 0, 100, 100, shape.Pie, 0, 90))
	txt := must(s.Text(1, 2, "label", 0))
	s.Hide(hidden)
	s.SetFill(r, "#abcdef")

	cmds := s.DrawList()
	require.Len(t, cmds, 3)
	assert.Equal(t, []int{r, pie, txt}, []int{cmds[0].ShapeID, cmds[1].ShapeID, cmds[2].ShapeID})

	rect := cmds[0]
	assert.Equal(t, "path", rect.Op)
	assert.Equal(t, "#abcdef", rect.Fill)
	assert.Equal(t, "solid", rect.Border)
	require.Len(t, rect.Path, 5)
	assert.Equal(t, PathCommand{"M", 0.0, 0.0}, rect.Path[0])
	assert.Equal(t, PathCommand{"Z"}, rect.Path[4])

	require.Len(t, cmds[1].Path, 3)
	assert.Equal(t, "E", cmds[1].Path[1][0])

	assert.Equal(t, "text", cmds[2].Op)
	assert.Equal(t, "label", cmds[2].Text)
	assert.Equal(t, vec.New(1, 2), *cmds[2].Position)

	out, err := DrawCommandsToJSON(cmds)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "rectangle", decoded[0]["kind"])
	assert.Equal(t, "sector", decoded[1]["kind"])
}

func TestClear(t *testing.T) {
	s := New()
	must := mustID(t)
	must(s.Rectangle(0, 0, 1, 1))
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Equal(t, 2, must(s.Rectangle(0, 0, 1, 1)))
}
