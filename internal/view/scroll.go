package view

// scrollScript brings the active side menu link into view using the plan
// SideMenu writes on #side-menu. Only one animation runs at a time; a new
// call cancels the one in flight. A link that is not rendered is ignored.
const scrollScript = `(function () {
  var nav = document.getElementById("side-menu");
  if (!nav) { return; }
  var panel = nav.closest(".leftside-menu") || nav;
  var timer = null;

  function cancel() {
    if (timer !== null) { clearInterval(timer); timer = null; }
  }

  function scrollToActive() {
    var url = nav.getAttribute("data-active-url");
    if (!url) { return; }
    var link = null;
    var links = nav.querySelectorAll("a[href]");
    for (var i = 0; i < links.length; i++) {
      if (links[i].getAttribute("href") === url) { link = links[i]; break; }
    }
    if (!link) { return; }

    cancel();
    var curve = nav.getAttribute("data-scroll-curve").split(",").map(Number);
    var ratio = Number(nav.getAttribute("data-scroll-ratio"));
    var frame = Number(nav.getAttribute("data-scroll-frame-ms"));
    var top = link.getBoundingClientRect().top - panel.getBoundingClientRect().top + panel.scrollTop;
    var start = panel.scrollTop;
    var target = top - panel.clientHeight * ratio;
    var n = 0;
    timer = setInterval(function () {
      panel.scrollTop = start + (target - start) * curve[n];
      n++;
      if (n >= curve.length) { cancel(); }
    }, frame);
  }

  panel.addEventListener("wheel", cancel, { passive: true });
  scrollToActive();
})();`
