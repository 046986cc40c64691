package controller

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/pkg/ytembed"
)

type livePageData struct {
	IFrameAPIURL string
	WSPath       string
	Ids          map[string]string
	HiddenClass  string
}

var livePageTemplate = template.Must(template.New("live").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>LIVE</title>
    <style>
        .hidden { display: none !important; }
        .sticky { position: sticky; }
        .top-0 { top: 0; }
        .w-full { width: 100%; }
        .z-100 { z-index: 100; }
        body { margin: 0; background: #111; color: #eee; font-family: sans-serif; }
        #video_header iframe { max-width: 100%; }
    </style>
</head>
<body>
    <div id="{{index .Ids "loading"}}">Loading...</div>
    <main id="{{index .Ids "main_content"}}" class="{{.HiddenClass}}">
        <div id="{{index .Ids "video_header"}}">
            <div id="{{index .Ids "youtube"}}"></div>
            <div id="{{index .Ids "streaming_end"}}" class="{{.HiddenClass}}"></div>
        </div>
        <h1 id="{{index .Ids "title"}}"></h1>
        <div id="{{index .Ids "summary"}}"></div>
        <section id="{{index .Ids "content_wrapper"}}" class="{{.HiddenClass}}">
            <div id="{{index .Ids "content"}}"></div>
        </section>
    </main>
    <script>
        (function() {
            var player = null;
            var apiReady = false;
            var pendingPlayer = null;

            function mountPlayer(p) {
                if (player) return;
                if (!apiReady) {
                    pendingPlayer = p;
                    return;
                }
                var opts = {
                    videoId: p.video_id,
                    width: p.width,
                    height: p.height
                };
                if (p.player_vars) opts.playerVars = p.player_vars;
                player = new YT.Player(p.mount_id, opts);
            }

            window.onYouTubeIframeAPIReady = function() {
                apiReady = true;
                if (pendingPlayer) {
                    var p = pendingPlayer;
                    pendingPlayer = null;
                    mountPlayer(p);
                }
            };

            function apply(cmd) {
                if (cmd.op === 'create_player') {
                    mountPlayer(cmd.player);
                    return;
                }
                if (cmd.op === 'set_document_title') {
                    document.title = cmd.value;
                    return;
                }
                var el = document.getElementById(cmd.target);
                if (!el) return;
                switch (cmd.op) {
                case 'set_html':
                    el.innerHTML = cmd.value;
                    break;
                case 'remove':
                    el.remove();
                    break;
                case 'add_class':
                    (cmd.classes || []).forEach(function(c) { el.classList.add(c); });
                    break;
                case 'remove_class':
                    (cmd.classes || []).forEach(function(c) { el.classList.remove(c); });
                    break;
                case 'clear_style':
                    el.style.removeProperty(cmd.value);
                    break;
                }
            }

            var params = new URLSearchParams(window.location.search);
            var cid = params.get('cid');
            if (!cid) return;

            var query = new URLSearchParams({ cid: cid });
            if (params.get('dkey')) query.set('dkey', params.get('dkey'));
            var scheme = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
            var ws = new WebSocket(scheme + window.location.host + '{{.WSPath}}?' + query.toString());

            function send(type, payload) {
                if (ws.readyState !== WebSocket.OPEN) return;
                ws.send(JSON.stringify({ type: type, payload: payload }));
            }

            function reportViewport() {
                send('VIEWPORT_RESIZED', { width: window.innerWidth });
            }

            ws.onopen = function() {
                reportViewport();
                setInterval(function() { send('ALIVE', null); }, 30000);
            };

            ws.onmessage = function(event) {
                var msg = JSON.parse(event.data);
                switch (msg.type) {
                case 'PAGE_STATE':
                case 'RENDER':
                case 'HEADER_LAYOUT':
                    (msg.payload.commands || []).forEach(apply);
                    break;
                case 'ERROR':
                    console.warn(msg.payload.message);
                    break;
                }
            };

            window.addEventListener('resize', reportViewport);

            var tag = document.createElement('script');
            tag.src = '{{.IFrameAPIURL}}';
            document.head.appendChild(tag);
        })();
    </script>
</body>
</html>
`))

var livePageIds = map[string]string{
	"youtube":         domain.ElementYoutube,
	"title":           domain.ElementTitle,
	"summary":         domain.ElementSummary,
	"loading":         domain.ElementLoading,
	"main_content":    domain.ElementMainContent,
	"content":         domain.ElementContent,
	"content_wrapper": domain.ElementContentWrapper,
	"streaming_end":   domain.ElementStreamingEnd,
	"video_header":    domain.ElementVideoHeader,
}

func (c controller) livePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := livePageTemplate.Execute(&buf, livePageData{
		IFrameAPIURL: ytembed.IFrameAPIURL,
		WSPath:       "/api/v1/ws/live",
		Ids:          livePageIds,
		HiddenClass:  domain.ClassHidden,
	}); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to render live page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
