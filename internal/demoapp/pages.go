package demoapp

// Page markup for the fixture scenarios. Kept deliberately small; the
// interesting behavior (overlays, delayed reveals, live feeds) is in the
// inline scripts, parameterized by Config through template fields.

const loginPageHTML = `<!DOCTYPE html>
<html>
<head><title>Login - Demo Shop</title></head>
<body>
    <h1 id="page-title">Sign in</h1>
    {{if .Error}}<div id="login-error" class="error">{{.Error}}</div>{{end}}
    <form id="login-form" method="POST" action="/login">
        <label for="username">Username</label>
        <input type="text" id="username" name="username" value="">
        <label for="password">Password</label>
        <input type="password" id="password" name="password" value="">
        <button type="submit" id="login-button">Log in</button>
    </form>
</body>
</html>`

const productsPageHTML = `<!DOCTYPE html>
<html>
<head><title>Products - Demo Shop</title></head>
<body>
    <h1 id="page-title">Products</h1>
    <div id="welcome-banner">Welcome, {{.Username}}</div>
    <ul id="product-list">
        <li class="product" id="product-widget">Widget <span class="price">9.99</span></li>
        <li class="product" id="product-gadget">Gadget <span class="price">24.50</span></li>
        <li class="product" id="product-doohickey">Doohickey <span class="price">3.25</span></li>
    </ul>
    <a href="/logout" id="logout-link">Log out</a>
</body>
</html>`

const overlayPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Overlay - Demo Shop</title>
<style>
    #spinner-overlay {
        position: fixed; top: 0; left: 0; right: 0; bottom: 0;
        background: rgba(255,255,255,0.8); z-index: 100;
    }
    #accept-button { position: relative; z-index: 1; }
</style>
</head>
<body>
    <h1 id="page-title">Terms</h1>
    <button id="accept-button" onclick="document.getElementById('result').textContent = 'accepted'">Accept</button>
    <div id="result"></div>
    <div id="spinner-overlay">Loading...</div>
    <script>
        setTimeout(function () {
            var el = document.getElementById('spinner-overlay');
            el.parentNode.removeChild(el);
        }, {{.DismissMillis}});
    </script>
</body>
</html>`

const dynamicPageHTML = `<!DOCTYPE html>
<html>
<head><title>Live Feed - Demo Shop</title></head>
<body>
    <h1 id="page-title">Live feed</h1>
    <div id="feed-status">connecting</div>
    <div id="feed"></div>
    <script>
        var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
        ws.onopen = function () {
            document.getElementById('feed-status').textContent = 'connected';
        };
        ws.onmessage = function (ev) {
            document.getElementById('feed').textContent = ev.data;
        };
        ws.onclose = function () {
            document.getElementById('feed-status').textContent = 'closed';
        };
    </script>
</body>
</html>`

const slowPageHTML = `<!DOCTYPE html>
<html>
<head><title>Slow - Demo Shop</title></head>
<body>
    <h1 id="page-title">Slow content</h1>
    <div id="placeholder">Loading...</div>
    <script>
        setTimeout(function () {
            document.getElementById('placeholder').remove();
            var el = document.createElement('div');
            el.id = 'late-content';
            el.textContent = 'content ready';
            document.body.appendChild(el);
        }, {{.RevealMillis}});
    </script>
</body>
</html>`
