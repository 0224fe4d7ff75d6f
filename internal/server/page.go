package server

const indexHTML = `<!DOCTYPE html>
<html lang="en" data-mode="{{.mode}}">
<head>
<meta charset="utf-8">
<title>driftnet</title>
<style>
  html, body { margin: 0; height: 100%; overflow: hidden; font-family: ui-monospace, monospace; }
  html[data-mode="light"] body { background: #f8fafc; color: #475569; }
  html[data-mode="dark"] body { background: #0b1120; color: #94a3b8; }
  #stage { position: fixed; inset: 0; }
  #stage svg { display: block; width: 100%; height: 100%; }
  #hud { position: fixed; top: 12px; left: 12px; font-size: 12px; }
  button { font: inherit; background: none; color: inherit; border: 1px solid currentColor; border-radius: 4px; cursor: pointer; }
</style>
</head>
<body>
<div id="stage"></div>
<div id="hud"><span id="stats"></span> <button id="theme">theme</button></div>
<script>
(function () {
  const stage = document.getElementById("stage");
  const root = document.documentElement;
  const json = (method, url, body) => fetch(url, {
    method: method,
    headers: {"Content-Type": "application/json"},
    body: body === undefined ? undefined : JSON.stringify(body),
  });

  const viewport = () => json("POST", "/api/viewport", {width: innerWidth, height: innerHeight});
  addEventListener("resize", viewport);
  viewport();

  stage.addEventListener("mousemove", e => json("POST", "/api/pointer", {x: e.clientX, y: e.clientY}));
  stage.addEventListener("mouseleave", () => json("DELETE", "/api/pointer"));

  document.getElementById("theme").addEventListener("click", async () => {
    const next = root.dataset.mode === "dark" ? "light" : "dark";
    const res = await json("PUT", "/api/theme", {mode: next});
    if (res.ok) root.dataset.mode = (await res.json()).mode;
  });

  const refresh = async () => {
    const res = await fetch("/frame.svg", {cache: "no-store"});
    if (res.ok) stage.innerHTML = await res.text();
    setTimeout(refresh, {{.interval}});
  };
  refresh();

  setInterval(async () => {
    const s = await (await fetch("/api/stats")).json();
    document.getElementById("stats").textContent = s.particles + " particles, " + s.links + " links";
  }, 1000);
})();
</script>
</body>
</html>
`
