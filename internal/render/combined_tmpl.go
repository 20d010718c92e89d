package render

const tmplCombined = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root{color-scheme:light}
body{margin:0;font-family:"Segoe UI",system-ui,sans-serif;color:#2f3e46;background:#f5f7f8}
.app{min-height:100vh;display:grid;grid-template-rows:auto 1fr}
.toolbar{display:flex;flex-wrap:wrap;gap:10px;align-items:center;padding:14px 16px;border-bottom:2px solid #2f3e4629;background:#fff;position:sticky;top:0;z-index:20}
.toolbar-title{font-weight:700;margin-right:6px}
.switch{border:2px solid #2f3e4640;border-radius:12px;overflow:hidden;display:inline-flex;background:#fff}
.switch button{border:0;background:transparent;padding:8px 14px;font-weight:700;cursor:pointer;color:#2f3e46}
.switch button[aria-pressed="true"]{background:#2f3e46;color:#fff}
.view{height:calc(100vh - 66px)}
.view[hidden]{display:none}
.view iframe{width:100%;height:100%;border:0;background:#fff;display:block}
</style>
</head>
<body>
<div class="app">
  <div class="toolbar">
    <span class="toolbar-title">{{.Title}}</span>
    <div class="switch" role="group" aria-label="Weergave">
      <button id="btn-horizontal" type="button" data-view="view-horizontal" aria-pressed="true">Horizontaal</button>
      <button id="btn-vertical" type="button" data-view="view-vertical" aria-pressed="false">Verticaal</button>
    </div>
  </div>
  <section class="view" id="view-horizontal">
    <iframe title="Horizontale tijdlijn" srcdoc="{{.Horizontal}}"></iframe>
  </section>
  <section class="view" id="view-vertical" hidden>
    <iframe title="Verticale tijdlijn" srcdoc="{{.Vertical}}"></iframe>
  </section>
</div>
<script>
(function(){
  var buttons = document.querySelectorAll('.switch button');
  function show(id){
    document.querySelectorAll('.view').forEach(function(v){ v.hidden = v.id !== id; });
    buttons.forEach(function(b){ b.setAttribute('aria-pressed', String(b.getAttribute('data-view') === id)); });
  }
  buttons.forEach(function(b){
    b.addEventListener('click', function(){ show(b.getAttribute('data-view')); });
  });
})();
</script>
</body>
</html>
`
