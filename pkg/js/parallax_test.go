package js

import (
	"errors"
	"testing"
	"time"

	"mouseparallax/pkg/event"
	"mouseparallax/pkg/html"
	"mouseparallax/pkg/parallax"
)

const scenePage = `
<div id="scene">
	<div class="layer" id="far" data-parallax-rule-intensity="0.5"></div>
	<div class="layer" id="near" data-parallax-rule-intensity-x="2" data-parallax-rule-speed="100"></div>
</div>`

func sceneDoc(t *testing.T) *html.Document {
	t.Helper()
	doc := parseHTML(t, scenePage)
	doc.GetElementByID("scene").Layout = &html.Rect{Width: 200, Height: 200}
	return doc
}

func TestMouseParallaxConstructor(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var mp = new MouseParallax(document.getElementsByClassName("layer"), {limitX: 5, limitY: 5});
		if (mp.items.length !== 2) throw new Error("items: " + mp.items.length);
		if (mp.items[0].intensityX !== 0.5) throw new Error("dataset not read: " + mp.items[0].intensityX);
		if (mp.items[1].speed !== 100) throw new Error("speed: " + mp.items[1].speed);
		if (mp.container !== document.getElementById("scene")) throw new Error("container should default to the parent");
		if (mp.status !== 1) throw new Error("status: " + mp.status);
		if (mp.throttle !== 20) throw new Error("throttle: " + mp.throttle);
		if (mp.globals.limitX !== 5) throw new Error("globals: " + JSON.stringify(mp.globals));
		if (mp.build() !== mp) throw new Error("build is not chainable");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	engines := engine.Engines()
	if len(engines) != 1 {
		t.Fatalf("expected 1 engine, got %d", len(engines))
	}
	if !engines[0].Subscribed() {
		t.Error("build() did not subscribe listeners")
	}
	if n := doc.ListenerCount(event.MouseMove); n != 1 {
		t.Errorf("%d mousemove listeners, want 1", n)
	}
	far := doc.GetElementByID("far")
	if !containsDecl(far.Attributes["style"], "transform", "translate(-50%, -50%)") {
		t.Errorf("required CSS missing: %q", far.Attributes["style"])
	}
}

func TestMouseParallaxMovesOnEvents(t *testing.T) {
	doc := sceneDoc(t)
	engine := New(WithLogger(quietEngine().logger), WithParallaxOptions(parallax.WithThrottle(0)))
	doc.Scripts = append(doc.Scripts, `
		new MouseParallax(document.getElementsByClassName("layer"), {limitX: 5}).build();
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	doc.DispatchEvent(event.Event{Type: event.MouseMove, ClientX: 150, ClientY: 150})

	far := doc.GetElementByID("far")
	if !containsDecl(far.Attributes["style"], "left", "55%") || !containsDecl(far.Attributes["style"], "top", "62.5%") {
		t.Errorf("far style = %q", far.Attributes["style"])
	}
	near := doc.GetElementByID("near")
	if !containsDecl(near.Attributes["style"], "left", "55%") || !containsDecl(near.Attributes["style"], "top", "75%") {
		t.Errorf("near style = %q", near.Attributes["style"])
	}
}

func TestMouseParallaxEditAndErrors(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var layers = document.getElementsByClassName("layer");
		var mp = new MouseParallax(layers);
		mp.addItem(layers[0], {intensityX: 9});
		if (mp.items.length !== 2) throw new Error("duplicate accepted");
		if (mp.lastError === null) throw new Error("duplicate not reported");

		mp.editItem(7, {intensityX: 3});
		mp.editItem(0, {element: layers[1]});
		mp.editItem(1, {intensityY: 0, position: 4});
		if (mp.items[0].element !== layers[0]) throw new Error("element identity changed");
		if (mp.items[1].intensityY !== 0) throw new Error("edit not applied");
		if (mp.items[1].position !== 4) throw new Error("position not applied");
		if (mp.errors.length !== 3) throw new Error("errors: " + mp.errors.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	errs := engine.Engines()[0].Errors()
	if !errors.Is(errs[0], parallax.ErrDuplicateElement) ||
		!errors.Is(errs[1], parallax.ErrInvalidEditTarget) ||
		!errors.Is(errs[2], parallax.ErrInvalidEditTarget) {
		t.Errorf("errors = %v", errs)
	}
	if !containsDecl(doc.GetElementByID("near").Attributes["style"], "z-index", "4") {
		t.Error("z-index not written")
	}
}

func TestMouseParallaxSetItemsMismatch(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var layers = document.getElementsByClassName("layer");
		var mp = new MouseParallax([]);
		mp.setItems(layers, [{intensityX: 2}]);
		if (mp.items.length !== 0) throw new Error("mismatched setItems applied");
		mp.setItems(layers, [{intensityX: 2}, {}]);
		if (mp.items.length !== 2 || mp.items[0].intensityX !== 2) throw new Error("setItems failed");
		if (mp.container === null) throw new Error("container not bound");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestMouseParallaxGlobalsAndThrottle(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var mp = new MouseParallax(document.getElementsByClassName("layer")).build();
		mp.execute(150, 150);
		var before = parseFloat(document.getElementById("far").style.left);
		mp.globals = {intensityX: 0.1};
		mp.execute(150, 150);
		var after = parseFloat(document.getElementById("far").style.left);
		if (Math.abs((after - 50) - (before - 50) * 0.1) > 1e-9) throw new Error(before + " -> " + after);
		mp.throttle = 75;
		if (mp.throttle !== 75) throw new Error("throttle: " + mp.throttle);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	pe := engine.Engines()[0]
	if pe.Throttle() != 75*time.Millisecond {
		t.Errorf("throttle = %v", pe.Throttle())
	}
	if n := doc.ListenerCount(event.MouseMove); n != 1 {
		t.Errorf("%d listeners after throttle change, want 1", n)
	}
}

func TestMouseParallaxMoveStrategy(t *testing.T) {
	doc := sceneDoc(t)
	engine := New(WithLogger(quietEngine().logger), WithParallaxOptions(parallax.WithThrottle(0)))
	doc.Scripts = append(doc.Scripts, `
		var seen = [];
		var mp = new MouseParallax(document.getElementsByClassName("layer"));
		mp.setMoveStrategy(function(x, y) {
			seen.push(x + "," + y);
			this.execute(200 - x, 200 - y);
		}).build();
		document.dispatchEvent({type: "mousemove", clientX: 150, clientY: 100});
		if (seen.join(";") !== "150,100") throw new Error("seen: " + seen.join(";"));
		if (document.getElementById("near").style.left !== "0%") throw new Error("left: " + document.getElementById("near").style.left);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestMouseParallaxStopAndDestroy(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var mp = new MouseParallax(document.getElementsByClassName("layer")).build().stop();
		mp.execute(150, 150);
		if (document.getElementById("far").style.left !== "50%") throw new Error("stopped engine moved");
		mp.destroy();
		if (mp.items.length !== 0 || mp.status !== 0) throw new Error("destroy");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	if n := doc.ListenerCount(event.MouseMove); n != 0 {
		t.Errorf("%d listeners after destroy", n)
	}
}

func TestMouseParallaxRejectsElementInRules(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var layers = document.getElementsByClassName("layer");
		var mp = new MouseParallax([]);
		if (mp.addItem(layers[0], {element: layers[1]}) !== mp) throw new Error("addItem is not chainable");
		mp.addItems(layers, [{}, {element: layers[0]}]);
		mp.setItems(layers, [{element: layers[0]}, {}]);
		if (mp.items.length !== 0) throw new Error("item added");
		if (mp.errors.length !== 3) throw new Error("errors: " + mp.errors.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	pe := engine.Engines()[0]
	if pe.Len() != 0 {
		t.Errorf("%d items, want 0", pe.Len())
	}
	for _, err := range pe.Errors() {
		if !errors.Is(err, parallax.ErrInvalidEditTarget) {
			t.Errorf("err = %v, want ErrInvalidEditTarget", err)
		}
	}
}

func TestMouseParallaxLiveObjects(t *testing.T) {
	doc := sceneDoc(t)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var layers = document.getElementsByClassName("layer");
		var mp = new MouseParallax(layers);
		if (mp.globals !== mp.globals) throw new Error("globals object is not stable");
		if (mp.items[0] !== mp.items[0]) throw new Error("item object is not stable");

		mp.globals.intensityX = 0.1;
		mp.reload();
		if (mp.globals.intensityX !== 0.1) throw new Error("globals: " + JSON.stringify(mp.globals));

		var far = mp.items[0];
		far.speed = 5000;
		mp.reload();
		if (far.speed !== 5000) throw new Error("speed: " + far.speed);

		far.element = layers[1];
		if (far.element !== layers[0]) throw new Error("element replaced");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	pe := engine.Engines()[0]
	if g := pe.Globals(); g.IntensityX == nil || *g.IntensityX != 0.1 {
		t.Errorf("globals = %+v", g)
	}
	if it, _ := pe.Item(0); it.Speed != 5000 {
		t.Errorf("speed = %d, want 5000", it.Speed)
	}
	if !containsDecl(doc.GetElementByID("far").Attributes["style"], "transition", "top 5000ms, left 5000ms") {
		t.Errorf("transition not updated: %q", doc.GetElementByID("far").Attributes["style"])
	}
	if !errors.Is(pe.Err(), parallax.ErrInvalidEditTarget) {
		t.Errorf("err = %v, want ErrInvalidEditTarget", pe.Err())
	}
}
