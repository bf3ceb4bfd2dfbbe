package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hillchallenge/hillboard/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCatalog = `[
  {"name": "Summit Ave", "description": "Steep paved climb", "length": 0.8, "vertical": 500, "strava_link": "https://strava.example/segments/1", "lat": 44.94, "lon": -93.18},
  {"name": "Ohio Street", "description": "Short and brutal", "length": 0.3, "vertical": 220, "link": "https://strava.example/segments/2", "lat": 44.93, "lon": -93.08},
  {"name": "Ramsey Hill", "description": "", "length": 0.5, "vertical": 310, "lat": 44.94, "lon": -93.12}
]`

func TestCatalogParse(t *testing.T) {
	Convey("Given a catalog JSON document", t, func() {
		Convey("When parsing a valid catalog", func() {
			c, err := catalog.Parse([]byte(sampleCatalog))

			Convey("Then it should load all entries", func() {
				So(err, ShouldBeNil)
				So(c, ShouldNotBeNil)
				So(c.Size(), ShouldEqual, 3)
			})

			Convey("Then lookups by name should work", func() {
				So(err, ShouldBeNil)
				h, ok := c.Lookup("Summit Ave")
				So(ok, ShouldBeTrue)
				So(h.VerticalFeet, ShouldEqual, 500.0)
				So(h.LengthMiles, ShouldEqual, 0.8)
				So(c.Contains("Ohio Street"), ShouldBeTrue)
				So(c.Contains("Nonexistent Hill"), ShouldBeFalse)
			})

			Convey("Then the legacy link field should be accepted", func() {
				So(err, ShouldBeNil)
				h, ok := c.Lookup("Ohio Street")
				So(ok, ShouldBeTrue)
				So(h.StravaLink, ShouldEqual, "https://strava.example/segments/2")
			})

			Convey("Then Hills should return a copy in file order", func() {
				So(err, ShouldBeNil)
				hills := c.Hills()
				So(len(hills), ShouldEqual, 3)
				So(hills[0].Name, ShouldEqual, "Summit Ave")
				hills[0].Name = "mutated"
				again := c.Hills()
				So(again[0].Name, ShouldEqual, "Summit Ave")
			})
		})

		Convey("When parsing malformed JSON", func() {
			c, err := catalog.Parse([]byte("{not json"))

			Convey("Then it should fail with a load error", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrLoadCatalog)
			})
		})

		Convey("When the catalog is empty", func() {
			c, err := catalog.Parse([]byte("[]"))

			Convey("Then it should fail validation", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrInvalidCatalog)
			})
		})

		Convey("When an entry has no name", func() {
			c, err := catalog.Parse([]byte(`[{"vertical": 100}]`))

			Convey("Then it should fail validation", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrInvalidCatalog)
			})
		})

		Convey("When an entry has non-positive vertical feet", func() {
			c, err := catalog.Parse([]byte(`[{"name": "Flat St", "vertical": 0}]`))

			Convey("Then it should fail validation", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrInvalidCatalog)
			})
		})

		Convey("When two entries share a name", func() {
			dup := `[{"name": "Twin", "vertical": 100}, {"name": "Twin", "vertical": 200}]`
			c, err := catalog.Parse([]byte(dup))

			Convey("Then it should fail validation", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrInvalidCatalog)
			})
		})
	})
}

func TestCatalogLoad(t *testing.T) {
	Convey("Given a catalog file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "hills.json")
		So(os.WriteFile(path, []byte(sampleCatalog), 0o600), ShouldBeNil)

		Convey("When loading from the file", func() {
			c, err := catalog.Load(path)

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(c.Size(), ShouldEqual, 3)
			})
		})

		Convey("When the file does not exist", func() {
			c, err := catalog.Load(filepath.Join(dir, "missing.json"))

			Convey("Then it should fail with a load error", func() {
				So(c, ShouldBeNil)
				So(err, ShouldWrap, catalog.ErrLoadCatalog)
			})
		})
	})
}
