package site

import "github.com/ziadkadry99/lernkatalog/internal/catalog"

// pageTemplate is the exported page. Situation pages live one directory
// down and set Base so every relative link resolves from the export root.
const pageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  {{- if .Base}}
  <base href="{{.Base}}">
  {{- end}}
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <nav class="sidebar">
    <h1 class="project-title"><a href="index.html">{{.Title}}</a></h1>
    <input type="search" id="search" value="{{.Query}}" placeholder="Lernsituation suchen…" autocomplete="off">
    <p class="generated">Stand: <span id="generatedAt">{{.GeneratedAt}}</span></p>
    <ul id="lernfeldList">{{.Nav}}</ul>
  </nav>
  <main id="content">{{.Detail}}</main>
  <script src="script.js"></script>
</body>
</html>`

const unitRowTemplate = `<li class="lf" id="{{.DOMID}}">
  <button type="button" class="lf-title" data-unit="{{.Index}}" aria-expanded="{{.Expanded}}">{{.Label}}</button>
  <ul class="ls-list" style="display: {{if .Expanded}}block{{else}}none{{end}}">{{.Items}}</ul>
</li>
`

const situationRowTemplate = `<li class="ls" id="{{.DOMID}}" style="display: {{if .Matched}}block{{else}}none{{end}}">
  <a class="ls-title" href="situations/{{.UnitIndex}}-{{.Index}}.html">{{.Label}}</a>
</li>
`

var cssContent = catalog.Stylesheet + `.project-title a { color: inherit; text-decoration: none; }
.ls-title { display: block; color: inherit; text-decoration: none; }
.ls-title:hover { text-decoration: underline; }
#search { width: 100%; box-sizing: border-box; padding: 6px 8px; margin-bottom: 8px; }
.welcome pre { background: #f6f8fa; padding: 12px; border-radius: 6px; overflow-x: auto; }
`

// jsContent drives the export without a server: unit rows toggle their
// list and the search box hides rows whose label does not contain the
// text, ignoring case.
const jsContent = `(function() {
  "use strict";

  var nav = document.getElementById("lernfeldList");
  var search = document.getElementById("search");
  if (!nav) { return; }

  nav.addEventListener("click", function(e) {
    var btn = e.target.closest(".lf-title");
    if (!btn) { return; }
    var list = btn.parentElement.querySelector(".ls-list");
    if (!list) { return; }
    var open = list.style.display === "none";
    list.style.display = open ? "block" : "none";
    btn.setAttribute("aria-expanded", open ? "true" : "false");
  });

  function applyFilter() {
    var q = search.value.toLowerCase();
    var rows = nav.querySelectorAll("li.ls");
    for (var i = 0; i < rows.length; i++) {
      var label = rows[i].textContent.trim().toLowerCase();
      rows[i].style.display = label.indexOf(q) !== -1 ? "block" : "none";
    }
  }

  if (search) {
    search.addEventListener("input", applyFilter);
  }
})();
`
