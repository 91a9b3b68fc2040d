package server

// scriptContent forwards DOM events of the viewer page over the websocket
// and patches the returned fragments in place. Without a connection the
// page falls back to plain form posts.
const scriptContent = `(function() {
  "use strict";

  var nav = document.getElementById("lernfeldList");
  var content = document.getElementById("content");
  var search = document.getElementById("search");
  if (!nav || !content || !search || !window.WebSocket) { return; }

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  var ready = false;

  ws.onopen = function() { ready = true; };
  ws.onclose = function() { ready = false; };
  ws.onmessage = function(ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "error") {
      console.warn("lernkatalog:", msg.content);
      return;
    }
    if (typeof msg.nav === "string") { nav.innerHTML = msg.nav; }
    if (msg.detail) {
      content.innerHTML = msg.detail;
      content.scrollTop = msg.scrollTop || 0;
    }
  };

  function send(obj) {
    if (!ready) { return false; }
    ws.send(JSON.stringify(obj));
    return true;
  }

  nav.addEventListener("click", function(e) {
    var btn = e.target.closest("button");
    if (!btn) { return; }
    var unit = parseInt(btn.getAttribute("data-unit"), 10);
    var sent = false;
    if (btn.classList.contains("lf-title")) {
      sent = send({ type: "toggle", unit: unit });
    } else if (btn.classList.contains("ls-title")) {
      sent = send({ type: "select", unit: unit, situation: parseInt(btn.getAttribute("data-situation"), 10) });
    }
    if (sent) { e.preventDefault(); }
  });

  search.addEventListener("input", function() {
    send({ type: "input", value: search.value });
  });
  if (search.form) {
    search.form.addEventListener("submit", function(e) {
      if (ready) { e.preventDefault(); }
    });
  }

  var scrollTimer = null;
  content.addEventListener("scroll", function() {
    clearTimeout(scrollTimer);
    scrollTimer = setTimeout(function() {
      send({ type: "scroll", top: Math.round(content.scrollTop) });
    }, 200);
  });
})();
`
