package ui

// ── Base layout ──────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
<title>Lageboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:#1c2733;color:#ecf0f1;font-size:14px;line-height:1.5}
nav{background:#17202a;border-bottom:2px solid #c0392b;padding:10px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#fff;font-weight:700;font-size:16px}
nav a{color:#95a5a6;text-decoration:none;padding:4px 8px;border-radius:4px}
nav a:hover{color:#ecf0f1;background:#212f3d}
nav .opnum{margin-left:auto;color:#e67e22;font-weight:600}
main{padding:16px}
h1{font-size:18px;font-weight:700;margin-bottom:12px}
h2{font-size:13px;font-weight:600;color:#95a5a6;text-transform:uppercase;letter-spacing:.05em;margin:16px 0 8px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#212f3d;border:1px solid #2c3e50;border-radius:6px;padding:12px 18px;min-width:140px}
.card .val{font-size:26px;font-weight:700;color:#fff}
.card .lbl{font-size:11px;color:#95a5a6;margin-top:2px}
.columns{display:flex;gap:12px;align-items:flex-start;flex-wrap:wrap}
.col{flex:1;min-width:240px;background:#212f3d;border:1px solid #2c3e50;border-radius:6px;overflow:hidden}
.col-hdr{padding:8px 12px;font-size:12px;font-weight:600;text-transform:uppercase;letter-spacing:.05em;background:#17202a}
.col-hdr.open{border-left:4px solid #e74c3c}
.col-hdr.assigned{border-left:4px solid #f39c12}
.col-hdr.completed{border-left:4px solid #27ae60}
.acard{padding:8px 12px;border-bottom:1px solid #2c3e50}
.acard .num{font-weight:700;color:#e67e22}
.acard .addr{font-size:12px;color:#95a5a6}
.acard .veh{font-size:12px;color:#3498db}
.empty{padding:10px 12px;color:#95a5a6;font-style:italic}
table{width:100%;border-collapse:collapse;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #2c3e50;color:#95a5a6;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #212f3d}
.badge{display:inline-block;padding:1px 8px;border-radius:10px;font-size:11px;font-weight:600}
.badge.active{background:#e74c3c;color:#fff}
.badge.queued{background:#f39c12;color:#17202a}
.badge.completed{background:#27ae60;color:#fff}
.stale{background:#7b241c;color:#fadbd8;padding:6px 12px;border-radius:4px;margin-bottom:12px;font-size:13px}
.noop{text-align:center;padding:60px 0;color:#95a5a6}
.noop h2{font-size:20px;color:#95a5a6;text-transform:none}
</style>
</head>
<body>
<nav>
  <span class="brand">Lageboard</span>
  <a href="/dashboard">Dashboard</a>
  <a href="/map">Karte</a>
  {{if .Operation}}<span class="opnum">{{.Operation.Number}} &middot; {{.Operation.Title}}</span>{{end}}
</nav>
<main>
{{if .Stale}}<div class="stale">Letzte Aktualisierung fehlgeschlagen &ndash; Anzeige zeigt den letzten bekannten Stand.</div>{{end}}
{{template "content" .}}
</main>
</body>
</html>{{end}}
`

// ── Dashboard ────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
{{if not .Operation}}
<div class="noop"><h2>Keine aktive Einsatzlage</h2></div>
{{else}}
<div class="cards">
  <div class="card"><div class="val">{{.Statistics.AssignmentCount}}</div><div class="lbl">Auftr&auml;ge</div></div>
  <div class="card"><div class="val">{{.Statistics.DeployedVehicleCount}}</div><div class="lbl">Fahrzeuge im Einsatz</div></div>
  <div class="card"><div class="val">{{.Statistics.DeployedPersonnel}}</div><div class="lbl">Einsatzkr&auml;fte</div></div>
</div>

<div class="columns">
  <div class="col">
    <div class="col-hdr open">Offen</div>
    {{range .Assignments.Open}}{{template "assignment-card" .}}{{else}}<div class="empty">Keine Auftr&auml;ge</div>{{end}}
  </div>
  <div class="col">
    <div class="col-hdr assigned">Zugewiesen</div>
    {{range .Assignments.Assigned}}{{template "assignment-card" .}}{{else}}<div class="empty">Keine Auftr&auml;ge</div>{{end}}
  </div>
  <div class="col">
    <div class="col-hdr completed">Abgeschlossen</div>
    {{range .Assignments.Completed}}{{template "assignment-card" .}}{{else}}<div class="empty">Keine Auftr&auml;ge</div>{{end}}
  </div>
</div>

<h2>Fahrzeuge im Einsatz</h2>
<div class="col">
  <table>
    <tr><th>Rufname</th><th>Typ</th><th>Besatzung</th><th>Auftr&auml;ge</th></tr>
    {{range .Vehicles.Deployed}}
    <tr>
      <td><strong>{{.Vehicle.Callsign}}</strong></td>
      <td>{{.Vehicle.VehicleType}}</td>
      <td>{{.Vehicle.CrewCount}}</td>
      <td>{{range $i, $a := .Assignments}}<span class="badge {{if eq (printf "%s" $a.Status) "completed"}}completed{{else if eq $i 0}}active{{else}}queued{{end}}">{{seq $a.Number}}</span> {{end}}</td>
    </tr>
    {{else}}
    <tr><td colspan="4" class="empty">Keine Fahrzeuge im Einsatz</td></tr>
    {{end}}
  </table>
</div>

<h2>Verf&uuml;gbare Fahrzeuge</h2>
{{range $loc, $vehicles := .Vehicles.AvailableByLocation}}
<div class="col" style="margin-bottom:12px">
  <div class="col-hdr">{{$loc}}</div>
  <table>
    {{range $vehicles}}
    <tr><td><strong>{{.Callsign}}</strong></td><td>{{.VehicleType}}</td><td>{{.CrewCount}}</td></tr>
    {{end}}
  </table>
</div>
{{end}}
{{end}}
{{end}}

{{define "assignment-card"}}
<div class="acard">
  <span class="num">{{seq .Number}}</span> {{.Title}}
  {{if .LocationAddress}}<div class="addr">{{.LocationAddress}}</div>{{end}}
  {{if .Vehicles}}<div class="veh">{{range .Vehicles}}{{.}} {{end}}</div>{{end}}
</div>
{{end}}
`

// ── Map ──────────────────────────────────────────────────────────────────────

const tmplMap = `
{{define "content"}}
{{if not .Operation}}
<div class="noop"><h2>Keine aktive Einsatzlage</h2></div>
{{else}}
{{if .Bounds}}<h2>Kartenausschnitt: {{printf "%.4f" .Bounds.Min.Lat}}, {{printf "%.4f" .Bounds.Min.Lon}} &ndash; {{printf "%.4f" .Bounds.Max.Lat}}, {{printf "%.4f" .Bounds.Max.Lon}}</h2>{{end}}
<div class="col">
  <table>
    <tr><th>Marker</th><th>Typ</th><th>Position</th><th>Details</th></tr>
    {{range .Markers}}
    <tr>
      <td><strong>{{.Label}}</strong></td>
      <td>{{.Kind}}</td>
      <td>{{printf "%.5f" .Position.Lat}}, {{printf "%.5f" .Position.Lon}}</td>
      <td style="white-space:pre-line">{{.Tooltip}}</td>
    </tr>
    {{else}}
    <tr><td colspan="4" class="empty">Keine Marker platziert</td></tr>
    {{end}}
  </table>
</div>
{{end}}
{{end}}
`
