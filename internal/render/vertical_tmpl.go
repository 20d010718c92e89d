package render

const tmplVertical = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root{--ink:#2f3e46;--muted:#6b7a80;--bg:#f5f7f8;--card:#fff;--sidebar-w:300px}
*{box-sizing:border-box}
body{margin:0;font-family:"Segoe UI",system-ui,sans-serif;color:var(--ink);background:var(--bg)}
.app{display:grid;grid-template-columns:var(--sidebar-w) 1fr;min-height:100vh}
/* Sidebar */
.sidebar{border-right:2px solid #2f3e4629;background:#fff;position:sticky;top:0;height:100vh;overflow-y:auto}
.sidebar-inner{padding:16px}
.title{font-size:18px;margin:0 0 4px}
.sub{font-size:12px;color:var(--muted);margin:0 0 12px}
.controls{display:flex;gap:8px;margin-bottom:12px}
.btn{border:2px solid #2f3e4640;background:#fff;border-radius:10px;padding:6px 10px;font-weight:700;cursor:pointer;color:var(--ink)}
.btn:hover{background:#eef3f4}
.field{display:flex;flex-direction:column;gap:4px;margin-bottom:10px;font-size:12px;font-weight:600}
.field select,.field input{font:inherit;font-weight:400;padding:5px 8px;border:2px solid #2f3e4640;border-radius:8px;background:#fff;color:var(--ink)}
.entity-list{list-style:none;margin:0;padding:0;display:flex;flex-direction:column;gap:4px}
.entity-item{display:flex;align-items:center;gap:8px;padding:4px 6px;border-radius:8px;cursor:pointer;font-size:13px}
.entity-item:hover{background:#eef3f4}
.swatch{width:14px;height:14px;border-radius:4px;border:1px solid #2f3e4640;flex:none}
.entity-name{flex:1;overflow:hidden;text-overflow:ellipsis;white-space:nowrap}
.count{font-size:11px;color:var(--muted)}
/* Main */
.main{padding:18px 24px}
.legend-top{display:flex;flex-wrap:wrap;gap:12px;margin-bottom:10px;font-size:13px}
.chip-legend{display:inline-flex;gap:6px;align-items:center}
.chip-box{width:22px;height:14px;border:2px solid var(--ink);border-radius:4px;background:#fff}
.chip-box.uncertain{border-style:dashed}
.chip-box.unverified{border-style:dotted;border-color:#9aa0a6;background:#f2f3f5}
.status{font-size:12px;color:var(--muted);margin:0 0 14px}
.day{margin-bottom:18px}
.day-title{font-size:15px;margin:0 0 8px;padding-bottom:4px;border-bottom:2px solid #2f3e461a}
.events{list-style:none;margin:0;padding:0 0 0 14px;border-left:2px solid #2f3e461a;display:flex;flex-direction:column;gap:10px}
.event{border:2px solid var(--ink);border-left:10px solid var(--entity-color);border-radius:16px;background:var(--card);padding:8px 12px}
.event.range{background:#eef3f4}
.range-wrap{border:2px solid #2f3e4640;border-left:6px solid var(--entity-color);border-radius:18px;padding:8px;background:#eef3f480}
.range-wrap>.event{margin-bottom:8px}
.contained{list-style:none;margin:0;padding:0 0 0 10px;display:flex;flex-direction:column;gap:10px}
.stack-hdr{display:flex;gap:8px;align-items:baseline;font-size:12px;font-weight:700;color:var(--muted);margin:0 0 4px 4px}
.stack-count{font-size:11px;padding:0 6px;border-radius:6px;background:#2f3e4614}
.stack-items{list-style:none;margin:0;padding:0;display:flex;flex-direction:column;gap:6px}
.stack.multi>.stack-items{padding-left:8px;border-left:3px double #2f3e4640}
.stack-items .dt,.stack-items .tm{display:none}
.event.uncertain{border-style:dashed;border-left-style:solid}
.event.unverified{border-style:dotted;border-left-style:solid;border-color:#9aa0a6;background:#f2f3f5}
.hdr{display:flex;flex-wrap:wrap;gap:8px;align-items:baseline}
.dt{font-weight:800;font-size:13px}
.tm{font-weight:700;font-size:13px;color:#2f3e46d9}
.ent{font-weight:700;font-size:12px;padding:1px 8px;border-radius:999px;border:2px solid #2f3e4626}
.flag{font-size:11px;padding:0 6px;border-radius:6px;background:#2f3e4614;color:var(--muted)}
.body{margin-top:6px;font-size:14px;line-height:1.3;white-space:pre-wrap}
.sources{display:flex;flex-wrap:wrap;gap:6px;margin-top:6px}
.source-link,.source-copy{font-size:12px;border:1px solid var(--ink);border-radius:6px;padding:1px 6px;background:#fff;color:var(--ink);text-decoration:none;cursor:pointer;font-family:inherit}
.source-copy.copied{background:#d8f3dc}
.empty{color:var(--muted);font-size:13px;padding:40px 10px}
@media (max-width:800px){.app{grid-template-columns:1fr}.sidebar{position:static;height:auto}}
</style>
</head>
<body>
<div class="app">
  <aside class="sidebar">
    <div class="sidebar-inner">
      <h1 class="title">{{.Title}}</h1>
      <p class="sub">Vink entiteiten aan of uit om te filteren.</p>
      <div class="controls">
        <button class="btn" id="btn-all" type="button">Alles</button>
        <button class="btn" id="btn-none" type="button">Niets</button>
      </div>
      <label class="field">Zekerheid
        <select id="filter-certain">
          <option value="all">Alle</option>
          <option value="yes">Zeker</option>
          <option value="no">Onzeker</option>
        </select>
      </label>
      <label class="field">Verificatie
        <select id="filter-verified">
          <option value="all">Alle</option>
          <option value="yes">Geverifieerd</option>
          <option value="no">Ongeverifieerd</option>
        </select>
      </label>
      <label class="field">Zoeken
        <input type="search" id="filter-text" placeholder="Tekst, entiteit, bron…">
      </label>
      <ul class="entity-list" id="entity-list">
        {{range .Entities}}<li><label class="entity-item"><input type="checkbox" class="entity-filter" value="{{.Name}}" checked><span class="swatch" style="background:{{.Color}}"></span><span class="entity-name" title="{{.Name}}">{{.Name}}</span><span class="count">{{.Count}}</span></label></li>
        {{end}}
      </ul>
    </div>
  </aside>
  <main class="main">
    <div class="legend-top">
      <span class="chip-legend"><span class="chip-box"></span> Zeker</span>
      <span class="chip-legend"><span class="chip-box uncertain"></span> Onzeker</span>
      <span class="chip-legend"><span class="chip-box unverified"></span> Ongeverifieerd</span>
    </div>
    <p class="status"><span id="shown-count">{{.Total}} van {{.Total}} gebeurtenissen</span>{{if .Issues}} · {{.Issues}} rijen met aangevulde waarden{{end}}</p>
    <div id="timeline">
      {{range .Days}}<section class="day">
        <h2 class="day-title">{{.Label}}</h2>
        <ol class="events">
          {{template "blocks" .Blocks}}
        </ol>
      </section>
      {{end}}
      <p class="empty" id="empty"{{if .Total}} hidden{{end}}>Geen gebeurtenissen voor deze filters.</p>
    </div>
  </main>
</div>
<script id="timeline-data" type="application/json">{{.Payload}}</script>
<script>
(function(){
  var data = JSON.parse(document.getElementById('timeline-data').textContent);
  var boxes = Array.prototype.slice.call(document.querySelectorAll('input.entity-filter'));
  var certainSel = document.getElementById('filter-certain');
  var verifiedSel = document.getElementById('filter-verified');
  var search = document.getElementById('filter-text');
  var shown = document.getElementById('shown-count');
  var empty = document.getElementById('empty');

  function flagMatches(sel, value){
    return sel.value === 'all' || (sel.value === 'yes') === value;
  }
  function apply(){
    var selected = Object.create(null);
    boxes.forEach(function(b){ if (b.checked) selected[b.value] = true; });
    var q = search.value.trim().toLowerCase();
    var n = 0;
    data.events.forEach(function(ev){
      var visible = ev.entities.some(function(name){ return selected[name] === true; }) &&
        flagMatches(certainSel, ev.certain) &&
        flagMatches(verifiedSel, ev.verified) &&
        (q === '' || ev.text.indexOf(q) !== -1);
      var el = document.getElementById('ev-' + ev.id);
      if (el) el.hidden = !visible;
      if (visible) n++;
    });
    var groups = document.querySelectorAll('.stack, .range-wrap, section.day');
    for (var i = groups.length - 1; i >= 0; i--) {
      groups[i].hidden = groups[i].querySelector('.event:not([hidden])') === null;
    }
    shown.textContent = n + ' van ' + data.events.length + ' gebeurtenissen';
    empty.hidden = n > 0;
  }
  function setAll(checked){
    boxes.forEach(function(b){ b.checked = checked; });
    apply();
  }

  boxes.forEach(function(b){ b.addEventListener('change', apply); });
  certainSel.addEventListener('change', apply);
  verifiedSel.addEventListener('change', apply);
  search.addEventListener('input', apply);
  document.getElementById('btn-all').addEventListener('click', function(){ setAll(true); });
  document.getElementById('btn-none').addEventListener('click', function(){ setAll(false); });

  document.addEventListener('click', function(e){
    var btn = e.target.closest('.source-copy');
    if (!btn) return;
    var text = btn.getAttribute('data-copy') || '';
    var done = function(){
      btn.classList.add('copied');
      window.setTimeout(function(){ btn.classList.remove('copied'); }, 800);
    };
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).then(done, done);
    } else {
      done();
    }
  });

  apply();
})();
</script>
</body>
</html>
{{define "blocks"}}{{range .}}{{if .Range}}<li class="range-wrap" style="--entity-color:{{.Range.Color}}">
  <div class="event {{.Range.Classes}}" id="ev-{{.Range.ID}}" style="--entity-color:{{.Range.Color}}">{{template "event" .Range}}</div>
  {{if .Children}}<ol class="contained">{{template "blocks" .Children}}</ol>{{end}}
</li>
{{else}}<li class="stack{{if gt (len .Stack) 1}} multi{{end}}">
  <div class="stack-hdr"><span class="stack-dt">{{.Date}}</span><span class="stack-tm">{{.Time}}</span>{{if gt (len .Stack) 1}}<span class="stack-count">{{len .Stack}}</span>{{end}}</div>
  <ol class="stack-items">
    {{range .Stack}}<li class="event {{.Classes}}" id="ev-{{.ID}}" style="--entity-color:{{.Color}}">{{template "event" .}}</li>
    {{end}}
  </ol>
</li>
{{end}}{{end}}{{end}}
{{define "event"}}
  <div class="hdr">
    <span class="dt">{{.Date}}</span>
    <span class="tm">{{.Time}}</span>
    {{range .Entities}}<span class="ent" style="background:{{.Color}}">{{.Name}}</span>{{end}}
    {{if not .Certain}}<span class="flag">onzeker</span>{{end}}
    {{if not .Verified}}<span class="flag">ongeverifieerd</span>{{end}}
  </div>
  <div class="body">{{.Description}}</div>
  {{if .Sources}}<div class="sources">{{range .Sources}}{{if .IsLink}}<a class="source-link" href="{{.Href}}" target="_blank" rel="noopener">{{.Text}}</a>{{else}}<button type="button" class="source-copy" data-copy="{{.Text}}" title="Kopieer bron">{{.Text}}</button>{{end}}{{end}}</div>{{end}}
{{end}}`
