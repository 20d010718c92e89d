package render

const tmplHorizontal = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root{--ink:#2f3e46;--muted:#6b7a80;--card:#f9fbfb;--label-w:220px;--label-gap:16px}
body{font-family:"Segoe UI",system-ui,sans-serif;margin:20px;color:var(--ink)}
h1{font-size:20px;margin:0 0 4px}
.meta{font-size:12px;color:var(--muted);margin-bottom:12px}
/* Legend */
.legend{display:flex;flex-wrap:wrap;gap:14px;align-items:center;margin-bottom:14px;font-size:13px}
.legend-item{display:inline-flex;gap:6px;align-items:center}
.legend-box{width:22px;height:14px;border:2px solid var(--ink);border-radius:4px;background:var(--card)}
.legend-box.uncertain{border-style:dashed}
.legend-box.unverified{border-style:dotted;border-color:#9aa0a6;background:#f2f3f5}
.legend-swatch{width:12px;height:12px;border-radius:3px;display:inline-block}
/* Lanes */
.timeline-scroller{overflow-x:auto;position:relative;padding-bottom:10px}
.timeline{display:flex;flex-direction:column;gap:5px;min-width:fit-content}
.entity{position:relative;border-left:6px solid var(--entity-color);padding-left:calc(var(--label-w) + var(--label-gap))}
.entity-title{position:sticky;left:0;z-index:100;width:var(--label-w);margin-left:calc(-1 * (var(--label-w) + var(--label-gap)));font-weight:600;background:#fff;padding:4px 10px;border-radius:10px;border:2px solid var(--entity-color);white-space:nowrap;overflow:hidden;text-overflow:ellipsis;margin-bottom:12px;box-sizing:border-box}
.subrow{position:relative;height:95px;margin-bottom:2px;width:var(--track-w)}
/* Cards */
.card{position:absolute;top:0;height:90px;padding:8px 10px 8px 10px;border:2px solid var(--ink);border-left:8px solid var(--entity-color);border-radius:10px;background:var(--card);box-sizing:border-box;overflow:hidden;cursor:pointer}
.card.range{background:#eef3f4}
.card.uncertain{border-style:dashed;border-left-style:solid}
.card.unverified{border-style:dotted;border-left-style:solid;border-color:#9aa0a6;background:#f2f3f5;color:#5f6b70}
.card:hover{z-index:200;box-shadow:0 6px 18px #0000001f}
.card.expanded{height:auto;min-height:90px;overflow:visible;z-index:1500;box-shadow:0 10px 26px #00000029}
.card-header{font-size:12px;font-weight:700;margin-bottom:4px;white-space:nowrap;overflow:hidden;text-overflow:ellipsis}
.card-body{font-size:13px;line-height:1.25}
.card-body.truncated::after{content:" ▸";color:var(--muted)}
.chips{display:flex;flex-wrap:wrap;gap:4px;margin-top:4px}
.chip{font-size:11px;padding:0 6px;border-radius:999px;border:1px solid var(--ink)}
.card-sources{display:none;flex-wrap:wrap;gap:6px;margin-top:6px}
.card.expanded .card-sources{display:flex}
.source-link,.source-copy{font-size:12px;border:1px solid var(--ink);border-radius:6px;padding:1px 6px;background:#fff;color:var(--ink);text-decoration:none;cursor:pointer;font-family:inherit}
.source-link:hover,.source-copy:hover{background:#e6eef0}
.source-copy.copied{background:#d8f3dc}
.empty{color:var(--muted);padding:40px 10px}
/* Minimap */
#minimap{position:fixed;right:18px;bottom:18px;width:260px;height:180px;background:#ffffffeb;border:2px solid var(--ink);border-radius:12px;box-shadow:0 8px 24px #0000001f;z-index:999;display:flex;flex-direction:column;overflow:hidden}
#minimap-title{font-size:12px;font-weight:600;padding:6px 10px;border-bottom:1px solid #2f3e4640}
#minimap-canvas{width:100%;flex:1;display:block;cursor:pointer}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.Events}} gebeurtenissen{{if .Issues}} · {{.Issues}} rijen met aangevulde waarden{{end}}</div>

<div class="legend">
  <span class="legend-item"><span class="legend-box"></span> Zeker</span>
  <span class="legend-item"><span class="legend-box uncertain"></span> Onzeker</span>
  <span class="legend-item"><span class="legend-box unverified"></span> Ongeverifieerd</span>
  {{range .Legend}}<span class="legend-item"><span class="legend-swatch" style="background:{{.Color}}"></span>{{.Name}} ({{.Count}})</span>
  {{end}}
</div>

{{if .Minimap}}<div id="minimap"><div id="minimap-title">Overzicht</div><canvas id="minimap-canvas"></canvas></div>{{end}}

<div class="timeline-scroller" id="scroller">
<div class="timeline" id="timeline" style="--track-w:{{.Width}}px">
{{range .Lanes}}
<section class="entity{{if .Unknown}} entity-unknown{{end}}" style="--entity-color:{{.Color}}" data-entity="{{.Name}}">
  <div class="entity-title" title="{{.Name}}">{{.Name}}</div>
  {{range .Rows}}<div class="subrow">
    {{range .}}<article class="card {{.Classes}}" data-event-id="{{.ID}}" data-color="{{.Color}}" style="left:{{.X}}px;width:{{.W}}px" title="{{.Description}}">
      <div class="card-header">{{.Date}} · {{.Time}}</div>
      <div class="card-body{{if .Truncated}} truncated{{end}}" data-short="{{.Short}}" data-full="{{.Description}}">{{.Short}}</div>
      {{if gt (len .Entities) 1}}<div class="chips">{{range .Entities}}<span class="chip" style="background:{{.Color}}">{{.Name}}</span>{{end}}</div>{{end}}
      {{if .Sources}}<div class="card-sources">{{range .Sources}}{{if .IsLink}}<a class="source-link" href="{{.Href}}" target="_blank" rel="noopener">{{.Text}}</a>{{else}}<button type="button" class="source-copy" data-copy="{{.Text}}" title="Kopieer bron">{{.Text}}</button>{{end}}{{end}}</div>{{end}}
    </article>
    {{end}}
  </div>
  {{end}}
</section>
{{else}}
<p class="empty">Geen gebeurtenissen gevonden.</p>
{{end}}
</div>
</div>

<script>
(function(){
  function fallbackCopy(text){
    var ta = document.createElement('textarea');
    ta.value = text;
    document.body.appendChild(ta);
    ta.select();
    try { document.execCommand('copy'); } catch (e) {}
    document.body.removeChild(ta);
  }
  function flash(btn){
    btn.classList.add('copied');
    window.setTimeout(function(){ btn.classList.remove('copied'); }, 800);
  }
  document.addEventListener('click', function(e){
    var btn = e.target.closest('.source-copy');
    if (!btn) return;
    e.stopPropagation();
    var text = btn.getAttribute('data-copy') || '';
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).then(function(){ flash(btn); }, function(){ fallbackCopy(text); flash(btn); });
    } else {
      fallbackCopy(text);
      flash(btn);
    }
  }, true);

  var active = null;
  function setText(card, full){
    var body = card.querySelector('.card-body');
    if (body) body.textContent = full ? body.getAttribute('data-full') : body.getAttribute('data-short');
  }
  function collapse(){
    if (!active) return;
    setText(active, false);
    active.classList.remove('expanded');
    active = null;
    redraw();
  }
  document.querySelectorAll('.card').forEach(function(card){
    card.addEventListener('click', function(e){
      if (e.target.closest('.source-link, .source-copy')) return;
      e.stopPropagation();
      if (active === card) { collapse(); return; }
      collapse();
      setText(card, true);
      card.classList.add('expanded');
      active = card;
      redraw();
    });
  });
  document.addEventListener('click', function(e){
    if (active && !e.target.closest('.card')) collapse();
  });

  var scroller = document.getElementById('scroller');
  var track = document.getElementById('timeline');
  var canvas = document.getElementById('minimap-canvas');
  function redraw(){ if (canvas) window.requestAnimationFrame(draw); }
  if (!canvas || !scroller || !track) return;
  var ctx = canvas.getContext('2d');

  function scaleX(){ return canvas.width / Math.max(1, track.scrollWidth); }
  function scaleY(){ return canvas.height / Math.max(1, track.scrollHeight); }
  function draw(){
    var dpr = window.devicePixelRatio || 1;
    var rect = canvas.getBoundingClientRect();
    canvas.width = Math.max(1, Math.floor(rect.width * dpr));
    canvas.height = Math.max(1, Math.floor(rect.height * dpr));
    var sx = scaleX(), sy = scaleY();
    var base = track.getBoundingClientRect();
    ctx.clearRect(0, 0, canvas.width, canvas.height);
    track.querySelectorAll('.card').forEach(function(card){
      var r = card.getBoundingClientRect();
      ctx.fillStyle = card.getAttribute('data-color') || '#2f3e46';
      ctx.fillRect((r.left - base.left) * sx, (r.top - base.top) * sy, Math.max(1, r.width * sx), Math.max(1, r.height * sy));
    });
    var top = Math.max(0, -base.top) * sy;
    var height = Math.min(window.innerHeight, base.height) * sy;
    ctx.strokeStyle = '#2f3e46';
    ctx.lineWidth = 2 * dpr;
    ctx.strokeRect(scroller.scrollLeft * sx, top, scroller.clientWidth * sx, Math.max(4, height));
  }
  function jump(e){
    var rect = canvas.getBoundingClientRect();
    var dpr = window.devicePixelRatio || 1;
    var x = (e.clientX - rect.left) * dpr / scaleX();
    var y = (e.clientY - rect.top) * dpr / scaleY();
    scroller.scrollLeft = x - scroller.clientWidth * 0.5;
    var base = track.getBoundingClientRect().top + window.scrollY;
    window.scrollTo(window.scrollX, base + y - window.innerHeight * 0.5);
  }
  var dragging = false;
  canvas.addEventListener('mousedown', function(e){ dragging = true; jump(e); });
  window.addEventListener('mousemove', function(e){ if (dragging) jump(e); });
  window.addEventListener('mouseup', function(){ dragging = false; });
  scroller.addEventListener('scroll', redraw);
  window.addEventListener('scroll', redraw);
  window.addEventListener('resize', redraw);
  draw();
})();
</script>
</body>
</html>
`
