package dashboard

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --muted: #6c757d; --accent: #0d6efd; --bad: #dc3545;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; display: flex; min-height: 100vh; }
aside { width: 280px; padding: 1rem; background: var(--card-bg); border-right: 1px solid var(--border); }
aside h2 { font-size: 1.1rem; margin-bottom: .75rem; }
aside label { display: block; font-size: .8125rem; color: var(--muted); margin: .75rem 0 .25rem; }
aside input, aside select { width: 100%; padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; font-size: .8125rem; }
aside select[multiple] { min-height: 7rem; }
aside button { margin-top: 1rem; padding: .5rem 1rem; border: 0; border-radius: 4px; background: var(--accent); color: #fff; cursor: pointer; }
main { flex: 1; padding: 1rem 1.5rem; max-width: 1400px; }
h1 { font-size: 1.75rem; margin-bottom: 1rem; }
h2.section { font-size: 1.25rem; margin: 1.5rem 0 .75rem; }
.error { color: var(--bad); margin-bottom: 1rem; }
.cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: .75rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.table-wrap { overflow-x: auto; border: 1px solid var(--border); border-radius: 8px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .375rem .625rem; text-align: left; border-bottom: 1px solid var(--border); white-space: nowrap; }
tr:nth-child(even) { background: var(--table-alt); }
.downloads { margin-top: 1rem; display: flex; gap: .5rem; }
.downloads a { padding: .5rem 1rem; border: 1px solid var(--accent); border-radius: 4px; color: var(--accent); text-decoration: none; font-size: .875rem; }
.chart-box { margin-bottom: 1rem; border: 1px solid var(--border); border-radius: 8px; padding: .5rem; overflow-x: auto; }
.muted { color: var(--muted); font-size: .8125rem; }
</style>
</head>
<body>
<aside>
  <h2>Filter Options</h2>
  <form id="filters" method="get" action="/">
    <label for="start">Select Date Range</label>
    <input type="date" id="start" name="start" value="{{.Selection.From}}" min="{{.Options.MinDate}}" max="{{.Options.MaxDate}}">
    <input type="date" id="end" name="end" value="{{.Selection.To}}" min="{{.Options.MinDate}}" max="{{.Options.MaxDate}}">

    <label for="state">Select States</label>
    <input type="hidden" name="state" value="">
    <select id="state" name="state" multiple>
      {{range choices .Options.States .Selection.States}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>

    <label for="category">Select Categories</label>
    <input type="hidden" name="category" value="">
    <select id="category" name="category" multiple>
      {{range choices .Options.Categories .Selection.Categories}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>

    <label for="segment">Select Segments</label>
    <input type="hidden" name="segment" value="">
    <select id="segment" name="segment" multiple>
      {{range choices .Options.Segments .Selection.Segments}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>

    {{if .Metadata.YearFilter}}
    <label for="year">Select Years</label>
    <input type="hidden" name="year" value="">
    <select id="year" name="year" multiple>
      {{range choices (years .Options.Years) (years .Selection.Years)}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
    {{end}}

    <button type="submit">Apply</button>
  </form>
</aside>
<main>
  <h1>{{.Title}}</h1>
  {{if .Error}}<p class="error" id="error">{{.Error}}</p>{{else}}<p class="error" id="error" hidden></p>{{end}}

  <p class="muted" id="rows">{{.Rows}} rows match the current filters</p>
  <div class="table-wrap">
    <table id="preview">
      <thead><tr>{{range .Preview.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>{{range .Preview.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
    </table>
  </div>

  <h2 class="section">Key Metrics</h2>
  <section class="cards">
    <div class="card"><div class="label">Total Sales</div><div class="value" id="kpi-sales">{{.Formatted.TotalSales}}</div></div>
    <div class="card"><div class="label">Total Profit</div><div class="value" id="kpi-profit">{{.Formatted.TotalProfit}}</div></div>
    <div class="card"><div class="label">Avg. Discount</div><div class="value" id="kpi-discount">{{.Formatted.AvgDiscount}}</div></div>
    <div class="card"><div class="label">Total Orders</div><div class="value" id="kpi-orders">{{.Formatted.TotalOrders}}</div></div>
  </section>

  <div class="downloads">
    <a id="download-csv" href="{{.CSVURL}}" download="{{.DownloadName}}">Download Filtered Data as CSV</a>
    <a id="download-xlsx" href="{{.XLSXURL}}">Download as XLSX</a>
  </div>

  <h2 class="section">Visual Insights</h2>
  <div class="chart-box" id="chart-category">{{svg .Charts.Category}}</div>
  <div class="chart-box" id="chart-states">{{svg .Charts.States}}</div>
  <div class="chart-box" id="chart-trend">{{svg .Charts.Trend}}</div>
  {{if .Metadata.MapEnabled}}
  <div class="chart-box" id="chart-map">{{svg .Charts.Map}}</div>
  {{if .Unmapped}}<p class="muted" id="unmapped">Not shown on the map: {{range $i, $s := .Unmapped}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{end}}
  {{end}}
</main>
<script>
(function () {
  var form = document.getElementById("filters");
  var socket = null;

  function selected(name) {
    var el = document.getElementById(name);
    if (!el) return null;
    var out = [];
    for (var i = 0; i < el.options.length; i++) {
      if (el.options[i].selected) out.push(el.options[i].value);
    }
    return out;
  }

  function request() {
    var req = {
      start: document.getElementById("start").value,
      end: document.getElementById("end").value,
      states: selected("state"),
      categories: selected("category"),
      segments: selected("segment")
    };
    var years = selected("year");
    if (years !== null) req.years = years;
    return req;
  }

  function query(req) {
    var q = new URLSearchParams();
    if (req.start) q.set("start", req.start);
    if (req.end) q.set("end", req.end);
    [["state", req.states], ["category", req.categories], ["segment", req.segments], ["year", req.years]].forEach(function (p) {
      if (!p[1]) return;
      if (p[1].length === 0) q.append(p[0], "");
      p[1].forEach(function (v) { q.append(p[0], v); });
    });
    return q.toString();
  }

  function text(id, value) {
    var el = document.getElementById(id);
    if (el) el.textContent = value;
  }

  function html(id, value) {
    var el = document.getElementById(id);
    if (el && value) el.innerHTML = value;
  }

  function renderTable(preview) {
    var table = document.getElementById("preview");
    var head = "<tr>" + preview.columns.map(function (c) { return "<th>" + escape(c) + "</th>"; }).join("") + "</tr>";
    var body = preview.rows.map(function (r) {
      return "<tr>" + r.map(function (c) { return "<td>" + escape(c) + "</td>"; }).join("") + "</tr>";
    }).join("");
    table.tHead.innerHTML = head;
    table.tBodies[0].innerHTML = body;
  }

  function escape(s) {
    return String(s).replace(/[&<>"]/g, function (c) {
      return { "&": "&amp;", "<": "&lt;", ">": "&gt;", '"': "&quot;" }[c];
    });
  }

  function apply(data) {
    var err = document.getElementById("error");
    err.hidden = true;
    text("rows", data.rows + " rows match the current filters");
    text("kpi-sales", data.formatted.totalSales);
    text("kpi-profit", data.formatted.totalProfit);
    text("kpi-discount", data.formatted.avgDiscount);
    text("kpi-orders", data.formatted.totalOrders);
    renderTable(data.preview);
    html("chart-category", data.charts.category);
    html("chart-states", data.charts.states);
    html("chart-trend", data.charts.trend);
    html("chart-map", data.charts.map);
    var q = query(data.request);
    document.getElementById("download-csv").href = "/api/download.csv?" + q;
    document.getElementById("download-xlsx").href = "/api/download.xlsx?" + q;
    history.replaceState(null, "", "/?" + q);
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    socket = new WebSocket(proto + location.host + "/ws");
    socket.onopen = function () { send(); };
    socket.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "dashboard") apply(msg.data);
      if (msg.type === "error") {
        var err = document.getElementById("error");
        err.textContent = msg.error;
        err.hidden = false;
      }
      if (msg.type === "reload") text("rows", "Dataset updated, refreshing...");
    };
    socket.onclose = function () { socket = null; setTimeout(connect, 3000); };
  }

  function send() {
    if (socket && socket.readyState === WebSocket.OPEN) {
      socket.send(JSON.stringify({ type: "filter", filter: request() }));
      return true;
    }
    return false;
  }

  form.addEventListener("change", function () { send(); });
  form.addEventListener("submit", function (ev) { if (send()) ev.preventDefault(); });
  setInterval(function () {
    if (socket && socket.readyState === WebSocket.OPEN) socket.send(JSON.stringify({ type: "ping" }));
  }, 30000);
  if (window.WebSocket) connect();
})();
</script>
</body>
</html>
`
