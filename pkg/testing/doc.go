// Package testing provides deterministic time and host fakes for counter
// tests.
//
// # Quick Start
//
// Create a harness, bind a counter to one of its elements and pump frames:
//
//	func TestCountsUp(t *testing.T) {
//	    h := countuptest.NewHarness()
//	    el := h.Document.Create("n")
//
//	    cfg := counter.DefaultConfig()
//	    cfg.End = counter.Float(100)
//	    cfg.Duration = time.Second
//	    c, err := counter.New(counter.Element(el), cfg, h.Host())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    rec := countuptest.Record(c)
//
//	    h.Pump()                          // first frame at t=0
//	    h.AdvanceAndPump(time.Second)     // final frame
//
//	    if el.TextContent() != "100" {
//	        t.Errorf("got %q", el.TextContent())
//	    }
//	    _ = rec.Names()
//	}
//
// # Deterministic Time
//
// The harness clock only moves when told to. Frame timestamps are
// milliseconds since the harness was created.
package testing
